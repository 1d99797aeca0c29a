package asset

import (
	"encoding/json"
	"fmt"
	"strconv"

	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
)

// Hash field names.
const (
	fieldPath    = "path"
	fieldName    = "name"
	fieldType    = "type"
	fieldSize    = "size"
	fieldCreated = "created"
	fieldMime    = "mime"
	fieldPreview = "preview"
	fieldFile    = "file"
	fieldProps   = "props"
)

// buildHashFields converts an asset into a flat map for HSET. Properties are one JSON field.
func buildHashFields(a *domasset.Asset) (map[string]string, error) {
	props := a.Properties()
	if props == nil {
		props = map[string]string{}
	}
	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("marshal properties of %s: %w", a.Path(), err)
	}

	meta := a.Meta()
	return map[string]string{
		fieldPath:    a.Path(),
		fieldName:    a.Name(),
		fieldType:    string(a.Type()),
		fieldSize:    strconv.FormatInt(meta.Size, 10),
		fieldCreated: meta.Created,
		fieldMime:    meta.MimeType,
		fieldPreview: meta.Preview,
		fieldFile:    meta.File,
		fieldProps:   string(data),
	}, nil
}

// parseHashFields converts a hash back into an asset. Broken size or properties are dropped.
func parseHashFields(m map[string]string) domasset.Asset {
	size, _ := strconv.ParseInt(m[fieldSize], 10, 64)

	var props map[string]string
	if raw := m[fieldProps]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			props = nil
		}
	}
	if props == nil {
		props = map[string]string{}
	}

	typ := domasset.Type(m[fieldType])
	if typ == "" {
		typ = domasset.TypeFile
	}

	return domasset.Reconstruct(m[fieldPath], m[fieldName], typ, domasset.Meta{
		Size:     size,
		Created:  m[fieldCreated],
		MimeType: m[fieldMime],
		Preview:  m[fieldPreview],
		File:     m[fieldFile],
	}, props)
}
