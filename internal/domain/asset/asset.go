package asset

import (
	"fmt"
	"maps"
	"path"
	"strings"

	"github.com/kailas-cloud/assetsearch/internal/domain/search/rank"
)

// Type distinguishes files from folders.
type Type string

// Asset types.
const (
	TypeFile Type = "file"
	TypeDir  Type = "dir"
)

// Well-known custom property keys set by the upload form.
const (
	PropContentType  = "Тип контента"
	PropCategory     = "Категория"
	PropSubcategory  = "Подкатегория"
	PropFolder       = "Папка"
	PropProductGroup = "Группа товаров"
	PropProductName  = "Название товара"
	PropSKU          = "SKU"
	PropFileType     = "Тип файла"
	PropResponsible  = "Ответственный"
)

// MaxPathLength bounds asset paths in bytes.
const MaxPathLength = 1024

// Asset is a file or folder in the marketing storage together with its classification.
type Asset struct {
	path     string
	name     string
	typ      Type
	size     int64
	created  string
	mimeType string
	preview  string
	file     string
	props    map[string]string
}

// Meta holds the optional descriptive fields of an asset.
type Meta struct {
	Size     int64
	Created  string
	MimeType string
	Preview  string
	File     string
}

// New validates and creates an Asset. Path must be absolute; name defaults to the last path element.
func New(p, name string, typ Type, meta Meta, props map[string]string) (Asset, error) {
	if p == "" {
		return Asset{}, fmt.Errorf("asset path is required")
	}
	if !strings.HasPrefix(p, "/") {
		return Asset{}, fmt.Errorf("asset path must start with /")
	}
	if len(p) > MaxPathLength {
		return Asset{}, fmt.Errorf("asset path too long (max %d)", MaxPathLength)
	}
	if typ == "" {
		typ = TypeFile
	}
	if typ != TypeFile && typ != TypeDir {
		return Asset{}, fmt.Errorf("asset type must be %q or %q, got %q", TypeFile, TypeDir, typ)
	}
	if meta.Size < 0 {
		return Asset{}, fmt.Errorf("asset size must not be negative")
	}
	if name == "" {
		name = path.Base(p)
	}
	if name == "" || name == "/" {
		return Asset{}, fmt.Errorf("asset name is required")
	}

	return Asset{
		path:     p,
		name:     name,
		typ:      typ,
		size:     meta.Size,
		created:  meta.Created,
		mimeType: meta.MimeType,
		preview:  meta.Preview,
		file:     meta.File,
		props:    maps.Clone(props),
	}, nil
}

// Reconstruct creates an Asset without validation (storage hydration).
func Reconstruct(p, name string, typ Type, meta Meta, props map[string]string) Asset {
	return Asset{
		path: p, name: name, typ: typ,
		size: meta.Size, created: meta.Created, mimeType: meta.MimeType,
		preview: meta.Preview, file: meta.File,
		props: props,
	}
}

// Path returns the storage path, which identifies the asset.
func (a *Asset) Path() string { return a.path }

// Name returns the file or folder name.
func (a *Asset) Name() string { return a.name }

// Type returns file or dir.
func (a *Asset) Type() Type { return a.typ }

// IsFile reports whether the asset is a file.
func (a *Asset) IsFile() bool { return a.typ == TypeFile }

// Meta returns the descriptive fields.
func (a *Asset) Meta() Meta {
	return Meta{Size: a.size, Created: a.created, MimeType: a.mimeType, Preview: a.preview, File: a.file}
}

// Properties returns the custom classification properties.
func (a *Asset) Properties() map[string]string { return a.props }

// Property returns a single property, or "" when it is not set.
func (a *Asset) Property(key string) string { return a.props[key] }

// Folder returns the parent folder of the asset.
func (a *Asset) Folder() string { return path.Dir(a.path) }

// Ext returns the lower-cased extension without the dot.
func (a *Asset) Ext() string {
	i := strings.LastIndexByte(a.name, '.')
	if i < 0 {
		return strings.ToLower(a.name)
	}
	return strings.ToLower(a.name[i+1:])
}

// Record is the asset as seen by the ranker.
func (a *Asset) Record() rank.Record[string] {
	return rank.Record[string]{
		ID:        a.path,
		Primary:   a.name,
		Secondary: a.props[PropProductName],
		Tertiary:  a.Folder(),
		IDText:    a.path,
	}
}
