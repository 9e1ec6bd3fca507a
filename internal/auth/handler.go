package auth

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/mail"
	"strings"

	"github.com/devlinkhq/devlink-api/internal/httputil"
	"github.com/devlinkhq/devlink-api/internal/logging"
	"github.com/devlinkhq/devlink-api/internal/ratelimit"
	"github.com/devlinkhq/devlink-api/internal/user"
)

// Handler contains HTTP handlers for registration and authentication.
type Handler struct {
	service     *Service
	rateLimiter *ratelimit.Limiter
	logger      *logging.Logger
}

func NewHandler(service *Service, rateLimiter *ratelimit.Limiter, logger *logging.Logger) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *RegisterRequest) validate() []httputil.FieldError {
	var errs []httputil.FieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, httputil.FieldError{Msg: "name cannot be blank", Param: "name"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil || len(req.Email) > 254 {
		errs = append(errs, httputil.FieldError{Msg: "email should be valid", Param: "email"})
	}
	if len(req.Password) < minPasswordLen {
		errs = append(errs, httputil.FieldError{Msg: "password should be at least 6 characters", Param: "password"})
	}
	return errs
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) validate() []httputil.FieldError {
	var errs []httputil.FieldError
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, httputil.FieldError{Msg: "email should be valid", Param: "email"})
	}
	if req.Password == "" {
		errs = append(errs, httputil.FieldError{Msg: "please enter password", Param: "password"})
	}
	return errs
}

// TokenResponse carries an issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse wraps the authenticated identity.
type UserResponse struct {
	User *user.User `json:"user"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new identity with name, email and password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration fields"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} httputil.ErrorsResponse "Validation error or duplicate email"
// @Router       /api/users [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allow(r, "register", logger) {
		httputil.RespondError(w, "too many requests, please try again later", http.StatusTooManyRequests)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		logger.Warn("registration failed: validation error")
		httputil.RespondFieldErrors(w, errs, http.StatusBadRequest)
		return
	}

	newUser, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists", "email", req.Email)
			httputil.RespondError(w, "user already exists", http.StatusBadRequest)
			return
		}
		logger.Error("registration failed: internal error", "error", err.Error())
		httputil.RespondError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info("user registered", "user_id", newUser.ID)

	httputil.RespondJSON(w, MessageResponse{Msg: "user registered"}, http.StatusOK)
}

// Login handles credential verification and token issuance
// @Summary      Login
// @Description  Verify credentials and receive a signed identity token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} TokenResponse
// @Failure      401 {object} httputil.ErrorsResponse "Invalid credentials"
// @Router       /api/auth [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allow(r, "login", logger) {
		httputil.RespondError(w, "too many requests, please try again later", http.StatusTooManyRequests)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		logger.Warn("login failed: validation error")
		httputil.RespondFieldErrors(w, errs, http.StatusUnauthorized)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials", "email", req.Email)
			httputil.RespondError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in", "email", req.Email)

	httputil.RespondJSON(w, TokenResponse{Token: token}, http.StatusOK)
}

// Me returns the authenticated identity
// @Summary      Current user
// @Description  Resolve the authenticated identity, without the password hash
// @Tags         auth
// @Produce      json
// @Success      200 {object} UserResponse
// @Failure      401 {object} httputil.ErrorsResponse
// @Router       /api/auth [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "no token, authorization denied", http.StatusUnauthorized)
		return
	}

	u, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("current user lookup failed: not found", "user_id", userID)
			httputil.RespondError(w, "user not found", http.StatusBadRequest)
			return
		}
		logger.Error("current user lookup failed", "error", err.Error())
		httputil.RespondError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, UserResponse{User: u}, http.StatusOK)
}

// allow applies the IP rate limit. Limiter failures are logged and the
// request is let through rather than blocking logins on a Redis outage.
func (h *Handler) allow(r *http.Request, purpose string, logger *logging.Logger) bool {
	ok, err := h.rateLimiter.Allow(r.Context(), clientIP(r), purpose)
	if err != nil {
		logger.Error("failed to check rate limit", "error", err.Error())
		return true
	}
	if !ok {
		logger.Warn("rate limit exceeded", "purpose", purpose, "ip", clientIP(r))
	}
	return ok
}

// clientIP returns the remote address without the port. The RealIP
// middleware has already resolved proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
