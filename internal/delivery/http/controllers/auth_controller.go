package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "meetinggate/internal/delivery/http/helpers"
	"meetinggate/internal/domain"
)

// MessageInvalidCredentials is returned to clients for any failed login.
const MessageInvalidCredentials = "Invalid username or password"

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Username) == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginData is the data object of a successful login.
// swagger:model LoginData
type LoginData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Token    string `json:"token"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with username and password. Returns the user and a JWT whose subject is the user id.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.StatusResponse "status: success, data: LoginData"
// @Failure 400 {object} helpers.StatusResponse "status: error"
// @Failure 401 {object} helpers.StatusResponse "status: error"
// @Failure 500 {object} helpers.StatusResponse "status: error"
// @Router /api/auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.Decode(w, r, &req); err != nil {
		h.WriteStatus(w, http.StatusBadRequest, h.StatusError, h.Message(err), nil)
		return
	}
	res, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.Logger.InfoContext(r.Context(), "login rejected", "username", strings.ToLower(strings.TrimSpace(req.Username)))
			h.WriteStatus(w, http.StatusUnauthorized, h.StatusError, MessageInvalidCredentials, nil)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteStatus(w, http.StatusInternalServerError, h.StatusError, "login failed", nil)
		return
	}

	h.WriteStatus(w, http.StatusOK, h.StatusSuccess, "", LoginData{
		ID:       res.User.ID,
		Username: res.User.Username,
		Name:     res.User.Name,
		Email:    res.User.Email,
		Token:    res.Token,
	})
}
