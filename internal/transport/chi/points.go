package chi

import (
	"encoding/json"
	"net/http"

	dompoint "github.com/kailas-cloud/assetsearch/internal/domain/point"
	"github.com/kailas-cloud/assetsearch/internal/usecase/stats"
)

// ListPoints handles GET /api/v1/points.
func (s *Server) ListPoints(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	if !s.checkQuery(w, r, stats.KindPoints, params.query()) {
		return
	}

	ranked, err := s.points.List(r.Context(), params.query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	scored := params.query() != ""
	items := make([]PointResponse, len(ranked))
	for i := range ranked {
		items[i] = pointToResponse(&ranked[i].Point)
		if scored {
			items[i].Score = &ranked[i].Score
		}
	}
	writeJSON(w, http.StatusOK, ListResponse[PointResponse]{Items: items, Total: len(items)})
}

// CreatePoint handles POST /api/v1/points.
func (s *Server) CreatePoint(w http.ResponseWriter, r *http.Request) {
	var req CreatePointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.points.Create(r.Context(), dompoint.Draft{
		Lat:     req.Lat,
		Lon:     req.Lon,
		Name:    req.Name,
		Address: req.Address,
		Contacts: dompoint.Contacts{
			Phone:   req.Phone,
			Email:   req.Email,
			Website: req.Website,
		},
		Preset: req.Preset,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pointToResponse(&p))
}

// GetPoint handles GET /api/v1/points/{id}.
func (s *Server) GetPoint(w http.ResponseWriter, r *http.Request) {
	id, err := bindPointID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	p, err := s.points.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pointToResponse(&p))
}

// PatchPoint handles PATCH /api/v1/points/{id}.
func (s *Server) PatchPoint(w http.ResponseWriter, r *http.Request) {
	id, err := bindPointID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	var req PatchPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patch, err := dompoint.NewPatch(dompoint.PatchFields{
		Lat:     req.Lat,
		Lon:     req.Lon,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Website: req.Website,
		Preset:  req.Preset,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	p, err := s.points.Update(r.Context(), id, patch)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pointToResponse(&p))
}

// DeletePoint handles DELETE /api/v1/points/{id}.
func (s *Server) DeletePoint(w http.ResponseWriter, r *http.Request) {
	id, err := bindPointID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	if err := s.points.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pointToResponse(p *dompoint.Point) PointResponse {
	c := p.Contacts()
	return PointResponse{
		ID:      p.ID(),
		Lat:     p.Lat(),
		Lon:     p.Lon(),
		Name:    p.Header(),
		Hint:    p.Hint(),
		Footer:  p.Footer(),
		Address: p.Address(),
		Balloon: p.Balloon(),
		Phone:   c.Phone,
		Email:   c.Email,
		Website: c.Website,
		Preset:  p.Preset(),
	}
}
