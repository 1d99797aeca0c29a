package chi

import (
	"github.com/kailas-cloud/assetsearch/internal/domain/product"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeQueryTooLong     ErrorCode = "query_too_long"
	ErrorCodePointNotFound    ErrorCode = "point_not_found"
	ErrorCodeProductNotFound  ErrorCode = "product_not_found"
	ErrorCodeAssetNotFound    ErrorCode = "asset_not_found"
	ErrorCodePropertyNotFound ErrorCode = "property_not_found"
	ErrorCodeInvalidProperty  ErrorCode = "invalid_property"
	ErrorCodePropertyConflict ErrorCode = "property_conflict"
	ErrorCodePropertyInUse    ErrorCode = "property_in_use"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ListResponse wraps a result list.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// ProductResponse is a catalog product, with the matching rule when explain=1.
type ProductResponse struct {
	product.Product
	MatchReason string `json:"match_reason,omitempty"`
}

// PointResponse is a map point.
type PointResponse struct {
	ID      int     `json:"id"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Hint    string  `json:"hint"`
	Footer  string  `json:"footer"`
	Address string  `json:"address"`
	Balloon string  `json:"balloon"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Website string  `json:"website"`
	Preset  string  `json:"preset"`
	Score   *int    `json:"score,omitempty"`
}

// CreatePointRequest is the body of POST /api/v1/points.
type CreatePointRequest struct {
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Website string   `json:"website"`
	Preset  string   `json:"preset"`
}

// PatchPointRequest is the body of PATCH /api/v1/points/{id}. Absent fields are unchanged.
type PatchPointRequest struct {
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Name    *string  `json:"name"`
	Address *string  `json:"address"`
	Phone   *string  `json:"phone"`
	Email   *string  `json:"email"`
	Website *string  `json:"website"`
	Preset  *string  `json:"preset"`
}

// AssetRequest describes one asset to store.
type AssetRequest struct {
	Path       string            `json:"path"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Size       int64             `json:"size"`
	Created    string            `json:"created"`
	MimeType   string            `json:"mime_type"`
	Preview    string            `json:"preview"`
	File       string            `json:"file"`
	Properties map[string]string `json:"properties"`
}

// UpsertAssetsRequest is the body of PUT /api/v1/assets.
type UpsertAssetsRequest struct {
	Items []AssetRequest `json:"items"`
}

// UpsertAssetsResponse reports how many assets a batch stored.
type UpsertAssetsResponse struct {
	Upserted int `json:"upserted"`
}

// AssetResponse is a stored asset.
type AssetResponse struct {
	Path       string            `json:"path"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Size       int64             `json:"size"`
	Created    string            `json:"created,omitempty"`
	MimeType   string            `json:"mime_type,omitempty"`
	Preview    string            `json:"preview,omitempty"`
	File       string            `json:"file,omitempty"`
	Properties map[string]string `json:"properties"`
	Score      *int              `json:"score,omitempty"`
}

// PropertiesResponse is the whole property vocabulary.
type PropertiesResponse struct {
	Values        map[string][]string `json:"values"`
	Subcategories map[string][]string `json:"subcategories"`
}

// AddPropertyRequest is the body of POST /api/v1/properties.
type AddPropertyRequest struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Parent string `json:"parent,omitempty"`
}

// AddPropertyResponse reports whether the value was new.
type AddPropertyResponse struct {
	Added bool `json:"added"`
}

// RenamePropertyRequest is the body of PATCH /api/v1/properties.
type RenamePropertyRequest struct {
	Type     string `json:"type"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
	Parent   string `json:"parent,omitempty"`
}

// RenamePropertyResponse reports how many assets were rewritten.
type RenamePropertyResponse struct {
	AssetsUpdated int `json:"assets_updated"`
}

// PropertyUsageResponse lists the assets carrying a value.
type PropertyUsageResponse struct {
	Count int      `json:"count"`
	Paths []string `json:"paths"`
}

// PropertyInUseResponse is the 409 body when a deleted value is still in use.
type PropertyInUseResponse struct {
	ErrorResponse
	Count int      `json:"count"`
	Paths []string `json:"paths"`
}

// StatsResponse is today's search counters.
type StatsResponse struct {
	Day         string           `json:"day"`
	PeriodStart int64            `json:"period_start"`
	PeriodEnd   int64            `json:"period_end"`
	Counts      map[string]int64 `json:"counts"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}
