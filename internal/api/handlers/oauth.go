package handlers

import (
	"net/http"
	"net/url"

	"github.com/dom/devdreams-backend/internal/service"
)

const oauthStateCookie = "oauthState"

// OAuthHandler drives the Google code flow: /auth/google sends the client
// to the provider, /auth/google/redirect finishes the handshake and hands
// tokens to the frontend via query parameters.
type OAuthHandler struct {
	googleService *service.GoogleService
	authService   *service.AuthService
	responder     *Responder
	frontendURL   string
	production    bool
}

func NewOAuthHandler(googleService *service.GoogleService, authService *service.AuthService, responder *Responder, frontendURL string, production bool) *OAuthHandler {
	return &OAuthHandler{
		googleService: googleService,
		authService:   authService,
		responder:     responder,
		frontendURL:   frontendURL,
		production:    production,
	}
}

func (h *OAuthHandler) Begin(w http.ResponseWriter, r *http.Request) {
	state, err := service.NewState()
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	authURL, err := h.googleService.AuthURL(state)
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.responder.Fail(w, http.StatusUnauthorized, "Invalid OAuth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.responder.Fail(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	user, err := h.googleService.HandleCallback(r.Context(), code)
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	result, err := h.authService.IssueTokenPair(r.Context(), user.ID)
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	redirectURL, err := url.Parse(h.frontendURL + "/auth/google-redirect")
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	q := redirectURL.Query()
	q.Set("accessToken", result.AccessToken)
	q.Set("refreshToken", result.RefreshToken)
	redirectURL.RawQuery = q.Encode()

	http.Redirect(w, r, redirectURL.String(), http.StatusFound)
}
