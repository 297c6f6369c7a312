package handler

import (
	"io"
	"net/http"

	"github.com/kanbo-dev/kanbo/internal/api"
	mw "github.com/kanbo-dev/kanbo/internal/middleware"
	"github.com/kanbo-dev/kanbo/internal/utils"
)

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.UpdateProfileRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	profile, err := h.users.UpdateProfile(user.Id, body.DisplayName)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, profile)
}

// UploadAvatar accepts a multipart form with an "avatar" file field.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.cfg.Public.MaxAvatarBytes + 1<<20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Missing avatar file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	profile, err := h.users.UpdateAvatar(user.Id, file)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, profile)
}

// GetAvatar streams a user's avatar image.
func (h *Handler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	userId, err := pathId(r, "user")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	avatar, err := h.users.Avatar(userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer avatar.Close()

	if _, err := io.Copy(w, avatar); err != nil {
		return // client went away mid-stream
	}
}

// Admin endpoints

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Users(mw.GetUserFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, api.UserListResponse{Users: users})
}

func (h *Handler) SetGlobalRole(w http.ResponseWriter, r *http.Request) {
	targetId, err := pathId(r, "user")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.SetGlobalRoleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.users.SetGlobalRole(mw.GetUserFromContext(r), targetId, body.Role); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	targetId, err := pathId(r, "user")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.users.Delete(mw.GetUserFromContext(r), targetId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
