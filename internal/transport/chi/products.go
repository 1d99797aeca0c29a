package chi

import (
	"net/http"

	"github.com/kailas-cloud/assetsearch/internal/domain/product"
	"github.com/kailas-cloud/assetsearch/internal/usecase/stats"
)

// SearchProducts handles GET /api/v1/products.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	if !s.checkQuery(w, r, stats.KindProducts, params.query()) {
		return
	}

	hits, err := s.catalog.Search(r.Context(), params.query(), params.content(), isSet(params.Refresh))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	explain := isSet(params.Explain)
	items := make([]ProductResponse, len(hits))
	for i, h := range hits {
		items[i] = ProductResponse{Product: h.Product}
		if explain {
			items[i].MatchReason = string(h.Reason)
		}
	}
	writeJSON(w, http.StatusOK, ListResponse[ProductResponse]{Items: items, Total: len(items)})
}

// SuggestProducts handles GET /api/v1/products/suggest.
func (s *Server) SuggestProducts(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	if !s.checkQuery(w, r, stats.KindSuggest, params.query()) {
		return
	}

	found, err := s.catalog.Suggest(r.Context(), params.query(), params.content())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[product.Product]{Items: found, Total: len(found)})
}

// GetProduct handles GET /api/v1/products/{name}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	name, err := bindProductName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	p, err := s.catalog.Get(r.Context(), name, params.content())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RefreshProducts handles POST /api/v1/products/refresh.
func (s *Server) RefreshProducts(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Invalidate(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
