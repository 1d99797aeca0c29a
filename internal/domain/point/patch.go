package point

import "fmt"

// Patch is a partial point update. Nil fields are unchanged.
type Patch struct {
	lat     *float64
	lon     *float64
	name    *string
	address *string
	phone   *string
	email   *string
	website *string
	preset  *string
}

// PatchFields is the raw input of NewPatch.
type PatchFields struct {
	Lat     *float64
	Lon     *float64
	Name    *string
	Address *string
	Phone   *string
	Email   *string
	Website *string
	Preset  *string
}

// NewPatch validates and creates a Patch. At least one field must be provided.
func NewPatch(f PatchFields) (Patch, error) {
	if f.Lat == nil && f.Lon == nil && f.Name == nil && f.Address == nil &&
		f.Phone == nil && f.Email == nil && f.Website == nil && f.Preset == nil {
		return Patch{}, fmt.Errorf("at least one field must be provided")
	}
	if f.Preset != nil && *f.Preset == "" {
		return Patch{}, fmt.Errorf("preset must not be empty")
	}
	return Patch{
		lat: f.Lat, lon: f.Lon,
		name: f.Name, address: f.Address,
		phone: f.Phone, email: f.Email, website: f.Website,
		preset: f.Preset,
	}, nil
}

// HasContacts reports whether the patch touches the balloon body.
func (p Patch) HasContacts() bool {
	return p.phone != nil || p.email != nil || p.website != nil
}
