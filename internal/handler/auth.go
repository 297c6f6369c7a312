package handler

import (
	"net/http"

	"github.com/kanbo-dev/kanbo/internal/api"
	"github.com/kanbo-dev/kanbo/internal/domain"
	mw "github.com/kanbo-dev/kanbo/internal/middleware"
	"github.com/kanbo-dev/kanbo/internal/utils"
)

func (h *Handler) setAuthCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    token,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.auth.Register(domain.Credentials{Email: body.Email, Password: body.Password}, body.DisplayName)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAuthCookie(w, token, int(h.cfg.JwtTTL().Seconds()))
	utils.WriteJSONStatus(w, http.StatusCreated, api.AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.auth.Login(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAuthCookie(w, token, int(h.cfg.JwtTTL().Seconds()))
	utils.WriteJSON(w, api.AuthResponse{Token: token, User: user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setAuthCookie(w, "", -1)
	w.WriteHeader(http.StatusOK)
}

// Me returns the authenticated user's fresh profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	profile, err := h.users.Get(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, profile)
}
