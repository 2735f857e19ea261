package auth

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/ledger-api/internal/httputil"
	"github.com/redmonkez12/ledger-api/internal/logging"
	"github.com/redmonkez12/ledger-api/internal/metrics"
	"github.com/redmonkez12/ledger-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
	metrics *metrics.Metrics
}

// NewHandler creates the auth handlers. m may be nil.
func NewHandler(service *Service, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		metrics: m,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a user account and return a session token for it
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} AuthResult
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or missing fields"
// @Failure      409 {object} httputil.ErrorResponse "Email already exists"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		h.metrics.ObserveAuth("register", metrics.OutcomeInvalidRequest)
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			logger.Warn("registration failed: validation error", "error", err.Error())
			h.metrics.ObserveAuth("register", metrics.OutcomeInvalidRequest)
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeMissingFields, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooLong):
			logger.Warn("registration failed: validation error", "error", err.Error())
			h.metrics.ObserveAuth("register", metrics.OutcomeInvalidRequest)
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodePasswordTooLong, http.StatusBadRequest)
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("registration failed: email already exists")
			h.metrics.ObserveAuth("register", metrics.OutcomeConflict)
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeEmailAlreadyExists, http.StatusConflict)
		default:
			logger.LogError("registration failed: internal error", err)
			h.metrics.ObserveAuth("register", metrics.OutcomeError)
			httputil.RespondErrorWithCode(w, "failed to register user", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user registered successfully", "user_id", result.User.ID)
	h.metrics.ObserveAuth("register", metrics.OutcomeSuccess)

	httputil.RespondJSON(w, result, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResult
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or missing fields"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		h.metrics.ObserveAuth("login", metrics.OutcomeInvalidRequest)
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			logger.Warn("login failed: validation error", "error", err.Error())
			h.metrics.ObserveAuth("login", metrics.OutcomeInvalidRequest)
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeMissingFields, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid credentials")
			h.metrics.ObserveAuth("login", metrics.OutcomeInvalidCredentials)
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidCredentials, http.StatusUnauthorized)
		default:
			logger.LogError("login failed: internal error", err)
			h.metrics.ObserveAuth("login", metrics.OutcomeError)
			httputil.RespondErrorWithCode(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user logged in successfully", "user_id", result.User.ID)
	h.metrics.ObserveAuth("login", metrics.OutcomeSuccess)

	httputil.RespondJSON(w, result, http.StatusOK)
}

// Me returns the authenticated user
// @Summary      Current user
// @Description  Return the user the bearer token was issued to
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.Public
// @Failure      401 {object} httputil.ErrorResponse "Missing, invalid or expired token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	current, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Valid signature for an account that no longer exists.
			logger.Warn("token subject not found", "user_id", userID)
			httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}
		logger.LogError("failed to load current user", err, "user_id", userID)
		httputil.RespondErrorWithCode(w, "failed to load user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, current, http.StatusOK)
}
