// Package catalog groups classified assets into products.
package catalog

import (
	"slices"

	"github.com/kailas-cloud/assetsearch/internal/domain/asset"
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
)

// ContentProduct is the content type of product media. Filtering by it also
// keeps assets that have no content type at all.
const ContentProduct = "Товар"

// Values of the asset.PropFileType property.
const (
	FileTypeMainPhoto = "Главное фото"
	FileTypePhoto     = "Фото"
	FileTypeVideo     = "Видео"
	FileTypeDocument  = "Документ"
	FileTypePNG       = "PNG"
)

var (
	imageExts    = []string{"jpg", "jpeg", "png", "gif", "webp", "bmp"}
	videoExts    = []string{"mp4", "avi", "mov", "mkv", "wmv"}
	documentExts = []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx"}
)

// Build groups file assets by product name, in order of first appearance.
// Folders and files without a product name are skipped.
func Build(assets []asset.Asset, contentFilter string) []product.Product {
	index := make(map[string]int)
	out := make([]product.Product, 0)

	for i := range assets {
		a := &assets[i]
		if !a.IsFile() {
			continue
		}
		name := a.Property(asset.PropProductName)
		if name == "" {
			continue
		}
		if contentFilter == ContentProduct {
			if ct := a.Property(asset.PropContentType); ct != ContentProduct && ct != "" {
				continue
			}
		}

		idx, ok := index[name]
		if !ok {
			idx = len(out)
			index[name] = idx
			out = append(out, product.New(name, a.Property(asset.PropProductGroup)))
		}
		p := &out[idx]

		if sku := a.Property(asset.PropSKU); sku != "" && !p.HasSKU(sku) {
			p.SKUs = append(p.SKUs, sku)
		}
		p.FileCount++
		place(p, a)
	}
	return out
}

func place(p *product.Product, a *asset.Asset) {
	meta := a.Meta()
	f := product.File{
		Name:    a.Name(),
		Preview: meta.Preview,
		File:    meta.File,
		Size:    meta.Size,
		Created: meta.Created,
	}

	switch a.Property(asset.PropFileType) {
	case FileTypeMainPhoto:
		p.MainPhoto = &f
		return
	case FileTypePhoto:
		p.Photos = append(p.Photos, f)
		return
	case FileTypeVideo:
		p.Videos = append(p.Videos, f)
		return
	case FileTypeDocument:
		p.Documents = append(p.Documents, f)
		return
	case FileTypePNG:
		p.PNGFiles = append(p.PNGFiles, f)
		return
	}

	ext := a.Ext()
	switch {
	case slices.Contains(imageExts, ext):
		if p.MainPhoto == nil && ext != "png" {
			p.MainPhoto = &f
		} else {
			p.Photos = append(p.Photos, f)
		}
	case slices.Contains(videoExts, ext):
		p.Videos = append(p.Videos, f)
	case slices.Contains(documentExts, ext):
		p.Documents = append(p.Documents, f)
	}
}
