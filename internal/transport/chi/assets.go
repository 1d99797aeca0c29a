package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	domasset "github.com/kailas-cloud/assetsearch/internal/domain/asset"
	"github.com/kailas-cloud/assetsearch/internal/usecase/stats"
)

// ListAssets handles GET /api/v1/assets.
func (s *Server) ListAssets(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	if !s.checkQuery(w, r, stats.KindAssets, params.query()) {
		return
	}

	ranked, err := s.assets.List(r.Context(), params.query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	scored := params.query() != ""
	items := make([]AssetResponse, len(ranked))
	for i := range ranked {
		items[i] = assetToResponse(&ranked[i].Asset)
		if scored {
			items[i].Score = &ranked[i].Score
		}
	}
	writeJSON(w, http.StatusOK, ListResponse[AssetResponse]{Items: items, Total: len(items)})
}

// GetAsset handles GET /api/v1/assets/item.
func (s *Server) GetAsset(w http.ResponseWriter, r *http.Request) {
	path, err := bindAssetPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	a, err := s.assets.Get(r.Context(), path)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assetToResponse(&a))
}

// UpsertAsset handles PUT /api/v1/assets/item. The path comes from the query string.
func (s *Server) UpsertAsset(w http.ResponseWriter, r *http.Request) {
	path, err := bindAssetPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	var req AssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	req.Path = path

	a, err := assetFromRequest(req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	created, err := s.assets.Upsert(r.Context(), &a)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, assetToResponse(&a))
}

// UpsertAssets handles PUT /api/v1/assets.
func (s *Server) UpsertAssets(w http.ResponseWriter, r *http.Request) {
	var req UpsertAssetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Items) > maxBatchSize {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			fmt.Sprintf("batch size %d exceeds maximum %d", len(req.Items), maxBatchSize))
		return
	}

	assets := make([]domasset.Asset, len(req.Items))
	for i, item := range req.Items {
		a, err := assetFromRequest(item)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, fmt.Sprintf("items[%d]: %s", i, err))
			return
		}
		assets[i] = a
	}

	if err := s.assets.UpsertMany(r.Context(), assets); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UpsertAssetsResponse{Upserted: len(assets)})
}

// DeleteAsset handles DELETE /api/v1/assets/item.
func (s *Server) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	path, err := bindAssetPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	if err := s.assets.Delete(r.Context(), path); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func assetFromRequest(req AssetRequest) (domasset.Asset, error) {
	a, err := domasset.New(req.Path, req.Name, domasset.Type(req.Type), domasset.Meta{
		Size:     req.Size,
		Created:  req.Created,
		MimeType: req.MimeType,
		Preview:  req.Preview,
		File:     req.File,
	}, req.Properties)
	if err != nil {
		return domasset.Asset{}, fmt.Errorf("%w: %w", domain.ErrInvalidAsset, err)
	}
	return a, nil
}

func assetToResponse(a *domasset.Asset) AssetResponse {
	meta := a.Meta()
	props := a.Properties()
	if props == nil {
		props = map[string]string{}
	}
	return AssetResponse{
		Path:       a.Path(),
		Name:       a.Name(),
		Type:       string(a.Type()),
		Size:       meta.Size,
		Created:    meta.Created,
		MimeType:   meta.MimeType,
		Preview:    meta.Preview,
		File:       meta.File,
		Properties: props,
	}
}
