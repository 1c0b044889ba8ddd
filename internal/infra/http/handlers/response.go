package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xavierca1/lead-management/internal/entity"
	"github.com/xavierca1/lead-management/internal/usecase"
)

const DefaultAppName = "leadManagementApp"

type ErrorResponse struct {
	Error       string                    `json:"error"`
	Message     string                    `json:"message"`
	EntityName  string                    `json:"entityName,omitempty"`
	FieldErrors []usecase.ValidationError `json:"fieldErrors,omitempty"`
}

// Alerts writes the X-<app>-alert / -params / -error headers that the
// frontend turns into notifications.
type Alerts struct {
	AppName string
}

func (a Alerts) app() string {
	if a.AppName == "" {
		return DefaultAppName
	}
	return a.AppName
}

func (a Alerts) entityAlert(w http.ResponseWriter, entityName, action, param string) {
	w.Header().Set("X-"+a.app()+"-alert", a.app()+"."+entityName+"."+action)
	w.Header().Set("X-"+a.app()+"-params", param)
}

func (a Alerts) failureAlert(w http.ResponseWriter, entityName, errorKey string) {
	w.Header().Set("X-"+a.app()+"-error", "error."+errorKey)
	w.Header().Set("X-"+a.app()+"-params", entityName)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func (a Alerts) badRequest(w http.ResponseWriter, entityName, errorKey, message string, fields []usecase.ValidationError) {
	a.failureAlert(w, entityName, errorKey)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:       errorKey,
		Message:     message,
		EntityName:  entityName,
		FieldErrors: fields,
	})
}

// writeServiceError maps service failures to HTTP. Domain errors are the
// client's fault, anything else is logged and hidden behind a 500.
func (a Alerts) writeServiceError(w http.ResponseWriter, r *http.Request, entityName string, err error) {
	var de *usecase.DomainError
	switch {
	case errors.As(err, &de):
		a.badRequest(w, entityName, de.Code, de.Message, de.Fields)
	case errors.Is(err, entity.ErrInvalidSort):
		a.badRequest(w, entityName, "badrequest", err.Error(), nil)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"entity", entityName, "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internalservererror",
			Message: "Internal server error",
		})
	}
}
