package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/creditdesk/credit-intake-be/internal/auth"
	"github.com/creditdesk/credit-intake-be/internal/http/respond"
	"github.com/creditdesk/credit-intake-be/internal/models"
	"github.com/creditdesk/credit-intake-be/internal/models/dto"
	"github.com/creditdesk/credit-intake-be/internal/storage"
)

// Tokens issued through the login flow live longer than the default.
const loginTokenTTL = 30 * time.Minute

// AuthHandler owns the register and token endpoints.
type AuthHandler struct {
	users  storage.UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, hasher: hasher, tokens: tokens}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.HandleFunc("POST /token", h.handleToken)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, err.Error())
		return
	}
	// The admin role is derived from this username, so nobody may claim it.
	if req.Username == models.AdminUsername {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "username 'admin' is reserved")
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		log.Printf("hash password error: %v", err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to register user")
		return
	}

	created, err := h.users.CreateUser(r.Context(), models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, respond.CodeConflict, "username already taken")
			return
		}
		log.Printf("create user error: %v", err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to register user")
		return
	}

	respond.JSON(w, http.StatusCreated, "user registered", created)
}

func (h *AuthHandler) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "invalid form payload")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "username and password are required")
		return
	}

	user, err := h.users.FindByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("login: fetch user %q: %v", username, err)
			respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to fetch user")
			return
		}
		h.invalidCredentials(w)
		return
	}
	if !h.hasher.Verify(password, user.PasswordHash) {
		h.invalidCredentials(w)
		return
	}

	token, err := h.tokens.Issue(user.Username, loginTokenTTL)
	if err != nil {
		log.Printf("login: issue token for %q: %v", username, err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "failed to issue token")
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// invalidCredentials is the uniform answer for unknown user and wrong
// password alike.
func (h *AuthHandler) invalidCredentials(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidCredentials, "incorrect username or password")
}
