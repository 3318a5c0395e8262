package handlers

import (
	"net/http"

	"github.com/dom/devdreams-backend/internal/api/middleware"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	responder   *Responder
	production  bool
}

func NewAuthHandler(authService *service.AuthService, responder *Responder, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		responder:   responder,
		production:  production,
	}
}

type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UpdatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type UserData struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (h *AuthHandler) userData(result *service.AuthResult) UserData {
	return UserData{
		Username:     result.User.Username,
		Email:        result.User.Email,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}

func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, pair service.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    pair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.production,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}

	if errs := validateSignup(req); len(errs) > 0 {
		h.responder.ValidationError(w, errs)
		return
	}

	result, err := h.authService.Signup(r.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	h.setTokenCookies(w, result.TokenPair)
	h.responder.Success(w, http.StatusCreated, "User created successfully.", h.userData(result))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}

	var errs []FieldError
	errs = append(errs, validateEmail(req.Email)...)
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	if len(errs) > 0 {
		h.responder.ValidationError(w, errs)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	h.setTokenCookies(w, result.TokenPair)
	h.responder.Success(w, http.StatusOK, "User logged in successfully.", h.userData(result))
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.SignOut(r.Context(), userID); err != nil {
		h.responder.Error(w, err)
		return
	}

	h.clearTokenCookies(w)
	h.responder.Success(w, http.StatusOK, "Logged out successfully", nil)
}

// RefreshToken rotates the pair presented in the refreshToken cookie.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refreshToken")
	if err != nil || cookie.Value == "" {
		h.responder.Fail(w, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	result, err := h.authService.RotateRefreshToken(r.Context(), cookie.Value)
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	h.setTokenCookies(w, result.TokenPair)
	h.responder.Success(w, http.StatusOK, "Access token refreshed", h.userData(result))
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}

	if errs := validateEmail(req.Email); len(errs) > 0 {
		h.responder.ValidationError(w, errs)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.responder.Error(w, err)
		return
	}

	h.responder.Success(w, http.StatusOK, "Token sent to email!", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req ResetPasswordRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}

	var errs []FieldError
	errs = append(errs, validatePassword("password", req.Password)...)
	errs = append(errs, validateConfirm(req.Password, req.ConfirmPassword)...)
	if len(errs) > 0 {
		h.responder.ValidationError(w, errs)
		return
	}

	result, err := h.authService.ConsumePasswordReset(r.Context(), token, req.Password)
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	h.setTokenCookies(w, result.TokenPair)
	h.responder.Success(w, http.StatusOK, "Password changed successfully.", h.userData(result))
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdatePasswordRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}

	var errs []FieldError
	if req.CurrentPassword == "" {
		errs = append(errs, FieldError{Field: "currentPassword", Message: "Current password is required"})
	}
	errs = append(errs, validatePassword("newPassword", req.NewPassword)...)
	errs = append(errs, validateConfirm(req.NewPassword, req.ConfirmNewPassword)...)
	if len(errs) > 0 {
		h.responder.ValidationError(w, errs)
		return
	}

	result, err := h.authService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	h.setTokenCookies(w, result.TokenPair)
	h.responder.Success(w, http.StatusCreated, "Password updated successfully.", h.userData(result))
}
