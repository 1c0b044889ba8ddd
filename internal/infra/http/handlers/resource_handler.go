package handlers

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/lead-management/internal/entity"
	"github.com/xavierca1/lead-management/internal/infra/http/middleware"
)

// ResourceService is what a REST resource needs from the service layer.
// Absence is reported through the found flags, never as an error.
type ResourceService[D any] interface {
	Save(ctx context.Context, d D) (D, error)
	Update(ctx context.Context, d D) (D, error)
	PartialUpdate(ctx context.Context, d D) (D, bool, error)
	FindAll(ctx context.Context, pageable entity.Pageable) (entity.Page[D], error)
	FindOne(ctx context.Context, id int64) (D, bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceHandler serves the CRUD endpoints of one entity under BasePath.
type ResourceHandler[D any] struct {
	Service    ResourceService[D]
	EntityName string
	BasePath   string
	Alerts     Alerts
	idOf       func(D) entity.ID
}

func (h *ResourceHandler[D]) Routes(r chi.Router) {
	r.Route(h.BasePath, func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.PartialUpdate)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ResourceHandler[D]) Create(w http.ResponseWriter, r *http.Request) {
	var d D
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		h.Alerts.badRequest(w, h.EntityName, "badrequest", "Malformed JSON body", nil)
		return
	}
	if h.idOf(d).Valid() {
		h.Alerts.badRequest(w, h.EntityName, "idexists", "A new "+h.EntityName+" cannot already have an ID", nil)
		return
	}

	saved, err := h.Service.Save(r.Context(), d)
	if err != nil {
		h.Alerts.writeServiceError(w, r, h.EntityName, err)
		return
	}
	middleware.RecordEntityOperation(h.EntityName, "created")

	id := h.idOf(saved).String()
	w.Header().Set("Location", h.BasePath+"/"+id)
	h.Alerts.entityAlert(w, h.EntityName, "created", id)
	writeJSON(w, http.StatusCreated, saved)
}

// Update is the full replace path.
func (h *ResourceHandler[D]) Update(w http.ResponseWriter, r *http.Request) {
	d, ok := h.decodeForID(w, r)
	if !ok {
		return
	}

	saved, err := h.Service.Update(r.Context(), d)
	if err != nil {
		h.Alerts.writeServiceError(w, r, h.EntityName, err)
		return
	}
	middleware.RecordEntityOperation(h.EntityName, "updated")

	h.Alerts.entityAlert(w, h.EntityName, "updated", h.idOf(saved).String())
	writeJSON(w, http.StatusOK, saved)
}

// PartialUpdate merges the supplied fields. It accepts application/json and
// application/merge-patch+json bodies.
func (h *ResourceHandler[D]) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	if !isMergePatch(r.Header.Get("Content-Type")) {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		return
	}

	d, ok := h.decodeForID(w, r)
	if !ok {
		return
	}

	saved, found, err := h.Service.PartialUpdate(r.Context(), d)
	if err != nil {
		h.Alerts.writeServiceError(w, r, h.EntityName, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	middleware.RecordEntityOperation(h.EntityName, "updated")

	h.Alerts.entityAlert(w, h.EntityName, "updated", h.idOf(saved).String())
	writeJSON(w, http.StatusOK, saved)
}

func (h *ResourceHandler[D]) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.FindAll(r.Context(), parsePageable(r.URL.Query()))
	if err != nil {
		h.Alerts.writeServiceError(w, r, h.EntityName, err)
		return
	}

	writePaginationHeaders(w, r.URL, page)
	writeJSON(w, http.StatusOK, page.Content)
}

func (h *ResourceHandler[D]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.Alerts.badRequest(w, h.EntityName, "idinvalid", "Invalid ID", nil)
		return
	}

	d, found, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.Alerts.writeServiceError(w, r, h.EntityName, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Delete does not check existence first.
func (h *ResourceHandler[D]) Delete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Alerts.badRequest(w, h.EntityName, "idinvalid", "Invalid ID", nil)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Alerts.writeServiceError(w, r, h.EntityName, err)
		return
	}
	middleware.RecordEntityOperation(h.EntityName, "deleted")

	h.Alerts.entityAlert(w, h.EntityName, "deleted", raw)
	w.WriteHeader(http.StatusNoContent)
}

// decodeForID reads the body of a PUT or PATCH and runs the id checks in
// order: idnull, idinvalid, idnotfound.
func (h *ResourceHandler[D]) decodeForID(w http.ResponseWriter, r *http.Request) (D, bool) {
	var d D

	pathID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.Alerts.badRequest(w, h.EntityName, "idinvalid", "Invalid ID", nil)
		return d, false
	}
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		h.Alerts.badRequest(w, h.EntityName, "badrequest", "Malformed JSON body", nil)
		return d, false
	}

	id := h.idOf(d)
	if !id.Valid() {
		h.Alerts.badRequest(w, h.EntityName, "idnull", "Invalid id", nil)
		return d, false
	}
	if !id.Equal(entity.NewID(pathID)) {
		h.Alerts.badRequest(w, h.EntityName, "idinvalid", "Invalid ID", nil)
		return d, false
	}

	exists, err := h.Service.Exists(r.Context(), pathID)
	if err != nil {
		h.Alerts.writeServiceError(w, r, h.EntityName, err)
		return d, false
	}
	if !exists {
		h.Alerts.badRequest(w, h.EntityName, "idnotfound", "Entity not found", nil)
		return d, false
	}
	return d, true
}

func isMergePatch(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || mt == "application/merge-patch+json"
}
