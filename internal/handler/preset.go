package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wedding-timeline/internal/domain"
)

// PresetRequest is the JSON body of POST /presets and PUT /presets/{id}.
// Durations missing from "defaults" take the server's configured value.
type PresetRequest struct {
	Name     string          `json:"name"`
	Defaults domain.Defaults `json:"defaults"`
}

// PresetResponse is a stored preset as returned to clients.
type PresetResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Defaults  domain.Defaults    `json:"defaults"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// PresetListResponse is the body of GET /presets.
type PresetListResponse struct {
	Data       []PresetResponse `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// ListPresets implements GET /presets.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPresets(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("invalid page parameter: %s", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("invalid limit parameter: %s", err))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	presets, total, err := s.presets.List(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	data := make([]PresetResponse, 0, len(presets))
	for _, p := range presets {
		data = append(data, newPresetResponse(p))
	}
	writeJSON(w, http.StatusOK, PresetListResponse{
		Data: data,
		Pagination: Pagination{
			Page:    params.Page,
			Limit:   params.Limit,
			Total:   total,
			HasMore: params.HasMore(total),
		},
	})
}

// CreatePreset implements POST /presets.
func (s *Server) CreatePreset(w http.ResponseWriter, r *http.Request) {
	body := PresetRequest{Defaults: s.timelines.Defaults()}
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.presets.Create(r.Context(), domain.Preset{Name: body.Name, Defaults: body.Defaults})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/presets/"+created.ID.String())
	writeJSON(w, http.StatusCreated, newPresetResponse(created))
}

// GetPreset implements GET /presets/{id}.
func (s *Server) GetPreset(w http.ResponseWriter, r *http.Request) {
	id, ok := bindPresetID(w, r)
	if !ok {
		return
	}

	p, err := s.presets.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresetResponse(p))
}

// UpdatePreset implements PUT /presets/{id}. The body replaces the stored
// name and defaults wholesale.
func (s *Server) UpdatePreset(w http.ResponseWriter, r *http.Request) {
	id, ok := bindPresetID(w, r)
	if !ok {
		return
	}
	body := PresetRequest{Defaults: s.timelines.Defaults()}
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.presets.Update(r.Context(), domain.Preset{ID: id, Name: body.Name, Defaults: body.Defaults})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresetResponse(updated))
}

// DeletePreset implements DELETE /presets/{id}.
func (s *Server) DeletePreset(w http.ResponseWriter, r *http.Request) {
	id, ok := bindPresetID(w, r)
	if !ok {
		return
	}

	if err := s.presets.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bindPresetID reads the {id} path parameter. On failure it writes a 400 and
// reports false.
func bindPresetID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("invalid id: %s", err))
		return id, false
	}
	return id, true
}

func newPresetResponse(p domain.Preset) PresetResponse {
	return PresetResponse{
		ID:        p.ID,
		Name:      p.Name,
		Defaults:  p.Defaults,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
