package handlers

import (
	"net/http"

	"github.com/turtacn/ScholarAI/internal/application/account"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
)

// AccountHandler serves login, registration and the profile form.
type AccountHandler struct {
	accounts    account.Service
	logger      logging.Logger
	maxBodySize int64
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(svc account.Service, logger logging.Logger, maxBodySize int64) *AccountHandler {
	return &AccountHandler{accounts: svc, logger: logger, maxBodySize: maxBodySize}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		WriteError(w, err)
		return
	}
	sess, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Register handles POST /api/v1/auth/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in account.RegisterInput
	if err := decodeJSON(w, r, h.maxBodySize, &in); err != nil {
		WriteError(w, err)
		return
	}
	sess, err := h.accounts.Register(r.Context(), in)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// Profile handles GET /api/v1/profile.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	u, err := h.accounts.Profile(r.Context(), userID)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// UpdateProfile handles PUT /api/v1/profile.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	var in account.ProfileInput
	if err := decodeJSON(w, r, h.maxBodySize, &in); err != nil {
		WriteError(w, err)
		return
	}
	u, err := h.accounts.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

//Personal.AI order the ending
