package point

import (
	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
)

// featureCollection is the stored GeoJSON-like document consumed by the map widget.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string      `json:"type"`
	ID         int         `json:"id"`
	Geometry   *geometry   `json:"geometry"`
	Properties *properties `json:"properties"`
	Options    *options    `json:"options,omitempty"`
}

type geometry struct {
	Type string `json:"type"`
	// [lat, lon], the order the map widget expects
	Coordinates []float64 `json:"coordinates"`
}

type properties struct {
	BalloonContentHeader string `json:"balloonContentHeader"`
	BalloonContent       string `json:"balloonContent"`
	BalloonContentFooter string `json:"balloonContentFooter"`
	HintContent          string `json:"hintContent"`
	Adress               string `json:"adress"`
}

type options struct {
	Preset string `json:"preset"`
}

func toFeature(p *dompoint.Point) feature {
	return feature{
		Type: "Feature",
		ID:   p.ID(),
		Geometry: &geometry{
			Type:        "Point",
			Coordinates: []float64{p.Lat(), p.Lon()},
		},
		Properties: &properties{
			BalloonContentHeader: p.Header(),
			BalloonContent:       p.Balloon(),
			BalloonContentFooter: p.Footer(),
			HintContent:          p.Hint(),
			Adress:               p.Address(),
		},
		Options: &options{Preset: p.Preset()},
	}
}

// fromFeature hydrates a point. Features without geometry or properties are rejected.
func fromFeature(f feature) (dompoint.Point, bool) {
	if f.Geometry == nil || len(f.Geometry.Coordinates) < 2 || f.Properties == nil {
		return dompoint.Point{}, false
	}
	preset := dompoint.DefaultPreset
	if f.Options != nil && f.Options.Preset != "" {
		preset = f.Options.Preset
	}
	pr := f.Properties
	return dompoint.Reconstruct(
		f.ID, f.Geometry.Coordinates[0], f.Geometry.Coordinates[1],
		pr.BalloonContentHeader, pr.HintContent, pr.BalloonContentFooter, pr.Adress,
		pr.BalloonContent, preset,
	), true
}
