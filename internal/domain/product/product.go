// Package product defines the catalog entry that search matches and the API returns.
package product

import "slices"

// File is a media file attached to a product card.
type File struct {
	Name    string `json:"name"`
	Preview string `json:"preview"`
	File    string `json:"file"`
	Size    int64  `json:"size"`
	Created string `json:"created"`
}

// Product is a catalog entry assembled from asset properties.
// Search reads only Name and SKUs; the rest is for display.
type Product struct {
	Name      string   `json:"name"`
	Group     string   `json:"group"`
	SKUs      []string `json:"skus"`
	MainPhoto *File    `json:"main_photo,omitempty"`
	Photos    []File   `json:"photos"`
	Videos    []File   `json:"videos"`
	Documents []File   `json:"documents"`
	PNGFiles  []File   `json:"png_files"`
	FileCount int      `json:"file_count"`
}

// New creates a product with empty media lists.
func New(name, group string) Product {
	return Product{
		Name:      name,
		Group:     group,
		SKUs:      []string{},
		Photos:    []File{},
		Videos:    []File{},
		Documents: []File{},
		PNGFiles:  []File{},
	}
}

// HasSKU reports whether sku is already listed.
func (p *Product) HasSKU(sku string) bool {
	return slices.Contains(p.SKUs, sku)
}
