package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"wastetrack/internal/api/middleware"
	"wastetrack/internal/app/service"
	"wastetrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/admin/login", h.adminLogin)
	r.Post("/logout", h.logout)
	r.Get("/session", h.session)
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type userLoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    publicUser `json:"user"`
}

type publicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type adminLoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Admin   publicAdmin `json:"admin"`
}

type publicAdmin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			common.RespondWithError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		if errors.Is(err, common.ErrBadRequest) {
			common.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, registerResponse{
		Success: true,
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, token, err := h.authService.LoginUser(r.Context(), req)
	if err != nil {
		respondLoginError(w, err)
		return
	}

	setSessionCookie(w, token)
	common.RespondWithJSON(w, http.StatusOK, userLoginResponse{
		Success: true,
		Message: "Login successful",
		User: publicUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			FullName: user.FullName,
		},
	})
}

func (h *AuthHandler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	admin, token, err := h.authService.LoginAdmin(r.Context(), req)
	if err != nil {
		respondLoginError(w, err)
		return
	}

	setSessionCookie(w, token)
	common.RespondWithJSON(w, http.StatusOK, adminLoginResponse{
		Success: true,
		Message: "Admin login successful",
		Admin: publicAdmin{
			ID:       admin.ID,
			Username: admin.Username,
			Email:    admin.Email,
		},
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	if err := h.authService.Logout(r.Context(), token); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	clearSessionCookie(w)
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	info := h.authService.Probe(r.Context(), middleware.SessionToken(r))
	common.RespondWithJSON(w, http.StatusOK, info)
}

// respondLoginError keeps unknown-identity and wrong-password responses
// identical so callers cannot probe which identities exist.
func respondLoginError(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrUnauthorized) {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if errors.Is(err, common.ErrBadRequest) {
		common.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	common.RespondWithError(w, http.StatusInternalServerError, "Login failed")
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
