package handler

import (
	"net/http"

	"github.com/kanbo-dev/kanbo/internal/api"
	mw "github.com/kanbo-dev/kanbo/internal/middleware"
	"github.com/kanbo-dev/kanbo/internal/service"
	"github.com/kanbo-dev/kanbo/internal/utils"
)

func (h *Handler) CreateChecklist(w http.ResponseWriter, r *http.Request) {
	cardId, err := pathId(r, "card")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.CreateChecklistRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	checklist, err := h.checklists.Create(mw.GetUserFromContext(r), cardId, body.Title)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSONStatus(w, http.StatusCreated, checklist)
}

func (h *Handler) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "checklist")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateChecklistRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.checklists.Update(mw.GetUserFromContext(r), id, body.Title, body.Position); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "checklist")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.checklists.Delete(mw.GetUserFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Checklist items

func (h *Handler) CreateChecklistItem(w http.ResponseWriter, r *http.Request) {
	checklistId, err := pathId(r, "checklist")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.CreateChecklistItemRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	item, err := h.checklists.AddItem(mw.GetUserFromContext(r), checklistId, body.Content, body.AssigneeId, body.DueAt)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSONStatus(w, http.StatusCreated, item)
}

func (h *Handler) UpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	itemId, err := pathId(r, "item")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateChecklistItemRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	upd := service.ChecklistItemUpdate{
		Content:    body.Content,
		Completed:  body.Completed,
		Position:   body.Position,
		AssigneeId: body.AssigneeId,
		DueAt:      body.DueAt,
	}
	if err := h.checklists.UpdateItem(mw.GetUserFromContext(r), itemId, upd); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	itemId, err := pathId(r, "item")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.checklists.DeleteItem(mw.GetUserFromContext(r), itemId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
