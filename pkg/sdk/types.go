package assetsearch

import (
	"fmt"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
)

// Asset property keys set by the upload form.
const (
	PropContentType  = domasset.PropContentType
	PropProductName  = domasset.PropProductName
	PropProductGroup = domasset.PropProductGroup
	PropSKU          = domasset.PropSKU
	PropFileType     = domasset.PropFileType
	PropCategory     = domasset.PropCategory
	PropSubcategory  = domasset.PropSubcategory
	PropResponsible  = domasset.PropResponsible
)

// Asset is a file or folder in the marketing storage.
type Asset struct {
	Path       string
	Name       string // defaults to the last path element
	Type       string // "file" (default) or "dir"
	Size       int64
	Created    string
	MimeType   string
	Preview    string
	File       string
	Properties map[string]string
}

// RankedAsset is an asset with its relevance score.
type RankedAsset struct {
	Asset Asset
	Score int
}

// Point is a map point.
type Point struct {
	ID      int
	Lat     float64
	Lon     float64
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
	Preset  string
	Balloon string
}

// PointDraft describes a point to create. Nil coordinates take the defaults.
type PointDraft struct {
	Lat     *float64
	Lon     *float64
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
	Preset  string
}

// PointPatch is a partial point update. Nil fields are unchanged.
type PointPatch struct {
	Lat     *float64
	Lon     *float64
	Name    *string
	Address *string
	Phone   *string
	Email   *string
	Website *string
	Preset  *string
}

// RankedPoint is a point with its relevance score.
type RankedPoint struct {
	Point Point
	Score int
}

func toInternalAsset(a Asset) (domasset.Asset, error) {
	ia, err := domasset.New(a.Path, a.Name, domasset.Type(a.Type), domasset.Meta{
		Size:     a.Size,
		Created:  a.Created,
		MimeType: a.MimeType,
		Preview:  a.Preview,
		File:     a.File,
	}, a.Properties)
	if err != nil {
		return domasset.Asset{}, fmt.Errorf("%w: %w", domain.ErrInvalidAsset, err)
	}
	return ia, nil
}

func fromInternalAsset(a *domasset.Asset) Asset {
	meta := a.Meta()
	return Asset{
		Path:       a.Path(),
		Name:       a.Name(),
		Type:       string(a.Type()),
		Size:       meta.Size,
		Created:    meta.Created,
		MimeType:   meta.MimeType,
		Preview:    meta.Preview,
		File:       meta.File,
		Properties: a.Properties(),
	}
}

func fromInternalPoint(p *dompoint.Point) Point {
	c := p.Contacts()
	return Point{
		ID:      p.ID(),
		Lat:     p.Lat(),
		Lon:     p.Lon(),
		Name:    p.Header(),
		Address: p.Address(),
		Phone:   c.Phone,
		Email:   c.Email,
		Website: c.Website,
		Preset:  p.Preset(),
		Balloon: p.Balloon(),
	}
}

func toInternalDraft(d PointDraft) dompoint.Draft {
	return dompoint.Draft{
		Lat:      d.Lat,
		Lon:      d.Lon,
		Name:     d.Name,
		Address:  d.Address,
		Contacts: dompoint.Contacts{Phone: d.Phone, Email: d.Email, Website: d.Website},
		Preset:   d.Preset,
	}
}

func toInternalPatch(p PointPatch) (dompoint.Patch, error) {
	patch, err := dompoint.NewPatch(dompoint.PatchFields{
		Lat:     p.Lat,
		Lon:     p.Lon,
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
		Email:   p.Email,
		Website: p.Website,
		Preset:  p.Preset,
	})
	if err != nil {
		return dompoint.Patch{}, fmt.Errorf("%w: %w", domain.ErrInvalidPoint, err)
	}
	return patch, nil
}
