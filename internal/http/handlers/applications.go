package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/creditdesk/credit-intake-be/internal/http/respond"
	"github.com/creditdesk/credit-intake-be/internal/middleware"
	"github.com/creditdesk/credit-intake-be/internal/models"
	"github.com/creditdesk/credit-intake-be/internal/models/dto"
	"github.com/creditdesk/credit-intake-be/internal/storage"
)

// ApplicationHandler owns the credit-application endpoints. Every route is
// behind RequireAuth; authorization beyond that is decided per operation.
type ApplicationHandler struct {
	apps storage.ApplicationStore
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(apps storage.ApplicationStore) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

// Register attaches application routes to the mux.
func (h *ApplicationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /applications", h.handleCreate)
	mux.HandleFunc("GET /applications", h.handleList)
	mux.HandleFunc("GET /applications/{id}", h.handleGet)
	mux.HandleFunc("PUT /applications/{id}/status", h.handleUpdateStatus)
}

func (h *ApplicationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidCredentials, "could not validate credentials")
		return
	}

	var req dto.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "invalid JSON payload")
		return
	}
	fullName, phone, err := req.Validate()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, err.Error())
		return
	}

	created, err := h.apps.CreateApplication(r.Context(), models.Application{
		FullName: fullName,
		Amount:   req.Amount,
		Phone:    phone,
		Status:   models.InitialStatus(req.Amount),
		UserID:   user.ID,
	})
	if err != nil {
		log.Printf("create application error: %v", err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to create application")
		return
	}
	respond.JSON(w, http.StatusCreated, "application submitted", created)
}

func (h *ApplicationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidCredentials, "could not validate credentials")
		return
	}

	var (
		apps []models.Application
		err  error
	)
	if user.IsAdmin() {
		apps, err = h.apps.ListApplications(r.Context())
	} else {
		apps, err = h.apps.ListApplicationsByUser(r.Context(), user.ID)
	}
	if err != nil {
		log.Printf("list applications error: %v", err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to list applications")
		return
	}
	respond.JSON(w, http.StatusOK, "applications", apps)
}

func (h *ApplicationHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidCredentials, "could not validate credentials")
		return
	}
	id, err := applicationID(r)
	if err != nil {
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "application not found")
		return
	}

	// Existence is checked before ownership: a nonexistent id is 404 even
	// for callers who could never have seen it.
	app, err := h.apps.GetApplication(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "application not found")
			return
		}
		log.Printf("get application %d error: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to fetch application")
		return
	}
	if !user.IsAdmin() && app.UserID != user.ID {
		respond.Error(w, http.StatusForbidden, respond.CodeForbidden, "no access to this application")
		return
	}
	respond.JSON(w, http.StatusOK, "application", app)
}

func (h *ApplicationHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidCredentials, "could not validate credentials")
		return
	}
	// Body shape is checked before authorization; a well-formed request
	// from a non-admin then gets 403 no matter whether the record exists
	// or who owns it.
	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "invalid JSON payload")
		return
	}
	if !req.Status.Valid() {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "status must be one of: new, approved, rejected")
		return
	}
	if !user.IsAdmin() {
		respond.Error(w, http.StatusForbidden, respond.CodeForbidden, "only the administrator may change application status")
		return
	}
	id, err := applicationID(r)
	if err != nil {
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "application not found")
		return
	}

	updated, err := h.apps.UpdateApplicationStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "application not found")
			return
		}
		log.Printf("update application %d status error: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to update application")
		return
	}
	respond.JSON(w, http.StatusOK, "status updated", updated)
}

func applicationID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
