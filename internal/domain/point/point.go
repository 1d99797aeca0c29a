// Package point models dealer and warehouse markers shown on the map.
package point

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"

	"github.com/kailas-cloud/assetsearch/internal/domain/search/rank"
)

// Defaults applied to fields missing from a Draft.
const (
	DefaultLat    = 53.9
	DefaultLon    = 27.5667
	DefaultPreset = "islands#grayDotIcon"
)

const none = "нет"

var (
	phoneRe   = regexp.MustCompile(`Телефон: ([^<]*)`)
	emailRe   = regexp.MustCompile(`Email: ([^<]*)`)
	websiteRe = regexp.MustCompile(`href='([^']+)'`)
)

// Point is a map marker (immutable value object).
type Point struct {
	id      int
	lat     float64
	lon     float64
	header  string
	hint    string
	footer  string
	address string
	balloon string
	preset  string
}

// Contacts are the phone, email and website rendered into the balloon body.
type Contacts struct {
	Phone   string
	Email   string
	Website string
}

// Draft is the input for a new point. Nil coordinates and an empty preset take defaults.
type Draft struct {
	Lat      *float64
	Lon      *float64
	Name     string
	Address  string
	Contacts Contacts
	Preset   string
}

// New validates d and creates a point with the given id.
func New(id int, d Draft) (Point, error) {
	if id <= 0 {
		return Point{}, fmt.Errorf("point id must be positive")
	}
	lat, lon := DefaultLat, DefaultLon
	if d.Lat != nil {
		lat = *d.Lat
	}
	if d.Lon != nil {
		lon = *d.Lon
	}
	if err := ValidateCoordinates(lat, lon); err != nil {
		return Point{}, err
	}
	preset := d.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	return Point{
		id:      id,
		lat:     lat,
		lon:     lon,
		header:  d.Name,
		hint:    d.Name,
		footer:  d.Address,
		address: d.Address,
		balloon: BalloonContent(d.Contacts),
		preset:  preset,
	}, nil
}

// Reconstruct creates a Point without validation (storage hydration).
func Reconstruct(id int, lat, lon float64, header, hint, footer, address, balloon, preset string) Point {
	return Point{
		id: id, lat: lat, lon: lon,
		header: header, hint: hint, footer: footer, address: address,
		balloon: balloon, preset: preset,
	}
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
// NaN and infinities are rejected.
func ValidateCoordinates(lat, lon float64) error {
	if !finite(lat) || !finite(lon) {
		return fmt.Errorf("coordinates must be finite numbers, got %v, %v", lat, lon)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// BalloonContent renders contacts as the HTML body of the marker balloon.
// Values are HTML-escaped.
func BalloonContent(c Contacts) string {
	site := none
	if c.Website != "" {
		w := html.EscapeString(c.Website)
		site = fmt.Sprintf("<a target='_blank' href='%s'>%s</a>", w, w)
	}
	return "Телефон: " + html.EscapeString(orNone(c.Phone)) +
		"<br>Email: " + html.EscapeString(orNone(c.Email)) +
		"<br>Сайт: " + site
}

// ParseContacts extracts contacts back from a balloon body. Missing phone or
// email come back as "нет", a missing website as "".
func ParseContacts(balloon string) Contacts {
	c := Contacts{Phone: none, Email: none}
	if m := phoneRe.FindStringSubmatch(balloon); m != nil {
		c.Phone = html.UnescapeString(m[1])
	}
	if m := emailRe.FindStringSubmatch(balloon); m != nil {
		c.Email = html.UnescapeString(m[1])
	}
	if m := websiteRe.FindStringSubmatch(balloon); m != nil {
		c.Website = html.UnescapeString(m[1])
	}
	return c
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}

// ID returns the point identifier.
func (p *Point) ID() int { return p.id }

// Lat returns the latitude in degrees.
func (p *Point) Lat() float64 { return p.lat }

// Lon returns the longitude in degrees.
func (p *Point) Lon() float64 { return p.lon }

// Header returns the balloon header, i.e. the point name.
func (p *Point) Header() string { return p.header }

// Hint returns the hover hint.
func (p *Point) Hint() string { return p.hint }

// Footer returns the balloon footer.
func (p *Point) Footer() string { return p.footer }

// Address returns the street address.
func (p *Point) Address() string { return p.address }

// Balloon returns the HTML balloon body.
func (p *Point) Balloon() string { return p.balloon }

// Preset returns the marker style.
func (p *Point) Preset() string { return p.preset }

// Contacts parses the balloon body.
func (p *Point) Contacts() Contacts { return ParseContacts(p.balloon) }

// Record is the point as seen by the ranker.
func (p *Point) Record() rank.Record[int] {
	return rank.Record[int]{
		ID:        p.id,
		Primary:   p.header,
		Secondary: p.address,
		Tertiary:  p.footer,
		IDText:    strconv.Itoa(p.id),
	}
}

// Apply returns a copy of p with the patch applied.
func (p Point) Apply(patch Patch) (Point, error) {
	if patch.lat != nil {
		p.lat = *patch.lat
	}
	if patch.lon != nil {
		p.lon = *patch.lon
	}
	if err := ValidateCoordinates(p.lat, p.lon); err != nil {
		return Point{}, err
	}
	if patch.name != nil {
		p.header = *patch.name
		p.hint = *patch.name
	}
	if patch.address != nil {
		p.footer = *patch.address
		p.address = *patch.address
	}
	if patch.preset != nil {
		p.preset = *patch.preset
	}
	if patch.HasContacts() {
		c := ParseContacts(p.balloon)
		if patch.phone != nil {
			c.Phone = *patch.phone
		}
		if patch.email != nil {
			c.Email = *patch.email
		}
		if patch.website != nil {
			c.Website = *patch.website
		}
		p.balloon = BalloonContent(c)
	}
	return p, nil
}
