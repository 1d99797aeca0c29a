package chi

import (
	"encoding/json"
	"net/http"
)

// GetProperties handles GET /api/v1/properties.
func (s *Server) GetProperties(w http.ResponseWriter, r *http.Request) {
	snap, err := s.properties.Get(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PropertiesResponse{Values: snap.Values, Subcategories: snap.Subcategories})
}

// AddProperty handles POST /api/v1/properties.
func (s *Server) AddProperty(w http.ResponseWriter, r *http.Request) {
	var req AddPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	added, err := s.properties.Add(r.Context(), req.Type, req.Value, req.Parent)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, AddPropertyResponse{Added: added})
}

// RenameProperty handles PATCH /api/v1/properties.
func (s *Server) RenameProperty(w http.ResponseWriter, r *http.Request) {
	var req RenamePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	n, err := s.properties.Rename(r.Context(), req.Type, req.OldValue, req.NewValue, req.Parent)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RenamePropertyResponse{AssetsUpdated: n})
}

// DeleteProperty handles DELETE /api/v1/properties.
func (s *Server) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	params, err := bindPropertyParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	err = s.properties.Delete(r.Context(), params.Type, params.Value, params.parent(), isSet(params.Force))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPropertyUsage handles GET /api/v1/properties/usage.
func (s *Server) GetPropertyUsage(w http.ResponseWriter, r *http.Request) {
	params, err := bindPropertyParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	paths, err := s.properties.Usage(r.Context(), params.Type, params.Value, params.parent())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PropertyUsageResponse{Count: len(paths), Paths: paths})
}
