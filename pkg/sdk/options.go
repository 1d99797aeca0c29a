package assetsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "valkey" or "redis"
	addrs    []string
	username string
	password string
	db       int

	keyPrefix      string
	catalogTTL     time.Duration
	statsTTL       time.Duration
	defaultContent string
	suggestLimit   int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		keyPrefix:  "assetsearch:",
		catalogTTL: 5 * time.Minute,
		statsTTL:   48 * time.Hour,
	}
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithUsername sets the ACL user.
func WithUsername(username string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
	})
}

// WithDB selects the logical database. Default: 0.
func WithDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = db
	})
}

// WithKeyPrefix namespaces every stored key. Default: "assetsearch:".
// Clients sharing a prefix share data with the HTTP server.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithCatalogCacheTTL sets how long a built catalog is cached. Default: 5m.
func WithCatalogCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogTTL = ttl
	})
}

// WithCatalogDefaults sets the content filter used when none is given
// and the number of suggestions returned. Defaults: "Товар", 10.
func WithCatalogDefaults(content string, suggestLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultContent = content
		c.suggestLimit = suggestLimit
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// ProductOption narrows a catalog query.
type ProductOption interface {
	applyProduct(*productQuery)
}

type productOptionFunc func(*productQuery)

func (f productOptionFunc) applyProduct(q *productQuery) { f(q) }

type productQuery struct {
	content string
	refresh bool
}

// ForContent selects the content filter. "" uses the client default.
func ForContent(content string) ProductOption {
	return productOptionFunc(func(q *productQuery) {
		q.content = content
	})
}

// Fresh rebuilds the catalog instead of reading the cache.
func Fresh() ProductOption {
	return productOptionFunc(func(q *productQuery) {
		q.refresh = true
	})
}

func newProductQuery(opts []ProductOption) productQuery {
	var q productQuery
	for _, o := range opts {
		o.applyProduct(&q)
	}
	return q
}
