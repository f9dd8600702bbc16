package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	objecterrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"
	objecthttp "atlas/contexts/crm-catalog/object-service/transport/http"
	"atlas/internal/shared/authctx"
)

func (s *Server) handleCreateObject(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	var req objecthttp.CreateObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.objects.Handler.CreateObjectHandler(r.Context(), actor, req)
	if err != nil {
		writeObjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleListObjects reads list constraints from the query string. Dynamic
// field filters use the "field." prefix, e.g. ?field.city=paris.
func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	query := r.URL.Query()

	filter := ports.ListFilter{
		Search:    query.Get("search"),
		Type:      query.Get("type"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}
	for name, values := range query {
		if !strings.HasPrefix(name, "field.") || len(values) == 0 {
			continue
		}
		if filter.Fields == nil {
			filter.Fields = map[string]string{}
		}
		filter.Fields[strings.TrimPrefix(name, "field.")] = values[0]
	}

	resp, err := s.objects.Handler.ListObjectsHandler(r.Context(), actor, filter)
	if err != nil {
		writeObjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetObject(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	resp, err := s.objects.Handler.GetObjectHandler(r.Context(), actor, r.PathValue("object_id"))
	if err != nil {
		writeObjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateObject(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	var req objecthttp.UpdateObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.objects.Handler.UpdateObjectHandler(r.Context(), actor, r.PathValue("object_id"), req)
	if err != nil {
		writeObjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	if err := s.objects.Handler.DeleteObjectHandler(r.Context(), actor, r.PathValue("object_id")); err != nil {
		writeObjectDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateRelation(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	var req objecthttp.CreateRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.objects.Handler.CreateRelationHandler(r.Context(), actor, r.PathValue("object_id"), req)
	if err != nil {
		writeObjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListRelations(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	resp, err := s.objects.Handler.ListRelationsHandler(r.Context(), actor, r.PathValue("object_id"))
	if err != nil {
		writeObjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListObjectTypes(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	resp, err := s.objects.Handler.ListObjectTypesHandler(r.Context(), actor)
	if err != nil {
		writeObjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveObjectType(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.From(r.Context())
	var req objecthttp.SaveObjectTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.objects.Handler.SaveObjectTypeHandler(r.Context(), actor, req)
	if err != nil {
		writeObjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func writeObjectDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, objecterrors.ErrObjectNotFound):
		writeError(w, http.StatusNotFound, "object not found")
	case errors.Is(err, objecterrors.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "permission denied")
	case errors.Is(err, objecterrors.ErrInvalidObject),
		errors.Is(err, objecterrors.ErrInvalidListFilter),
		errors.Is(err, objecterrors.ErrInvalidRelation),
		errors.Is(err, objecterrors.ErrInvalidObjectType):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
