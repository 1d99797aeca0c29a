package domain

import "errors"

var (
	// ErrPointNotFound signals a missing map point.
	ErrPointNotFound = errors.New("point not found")
	// ErrProductNotFound signals that no product has the requested name.
	ErrProductNotFound = errors.New("product not found")
	// ErrAssetNotFound signals a missing asset.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrPropertyNotFound signals a property value absent from the vocabulary.
	ErrPropertyNotFound = errors.New("property value not found")

	// ErrInvalidPoint signals point input that fails validation.
	ErrInvalidPoint = errors.New("invalid point")
	// ErrInvalidAsset signals asset input that fails validation.
	ErrInvalidAsset = errors.New("invalid asset")
	// ErrInvalidProperty signals an unknown property key or an empty value.
	ErrInvalidProperty = errors.New("invalid property")
	// ErrPropertyConflict signals a duplicate value on rename.
	ErrPropertyConflict = errors.New("property value already exists")
	// ErrPropertyInUse signals a delete of a value that assets or subcategories still reference.
	ErrPropertyInUse = errors.New("property value in use")
	// ErrQueryTooLong signals a search query over the configured limit.
	ErrQueryTooLong = errors.New("query too long")
)
