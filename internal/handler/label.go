package handler

import (
	"net/http"

	"github.com/kanbo-dev/kanbo/internal/api"
	mw "github.com/kanbo-dev/kanbo/internal/middleware"
	"github.com/kanbo-dev/kanbo/internal/utils"
)

func (h *Handler) GetLabels(w http.ResponseWriter, r *http.Request) {
	boardId, err := pathId(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	labels, err := h.labels.Labels(mw.GetUserFromContext(r), boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, labels)
}

func (h *Handler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	boardId, err := pathId(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.CreateLabelRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	label, err := h.labels.Create(mw.GetUserFromContext(r), boardId, body.Name, body.Color)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSONStatus(w, http.StatusCreated, label)
}

func (h *Handler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "label")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateLabelRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.labels.Update(mw.GetUserFromContext(r), id, body.Name, body.Color); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "label")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.labels.Delete(mw.GetUserFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
