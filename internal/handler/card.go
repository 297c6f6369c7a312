package handler

import (
	"net/http"

	"github.com/kanbo-dev/kanbo/internal/api"
	mw "github.com/kanbo-dev/kanbo/internal/middleware"
	"github.com/kanbo-dev/kanbo/internal/service"
	"github.com/kanbo-dev/kanbo/internal/utils"
)

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	listId, err := pathId(r, "list")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.CreateCardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	card, err := h.cards.Create(mw.GetUserFromContext(r), listId, body.Title, body.Description, body.DueAt)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSONStatus(w, http.StatusCreated, card)
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "card")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	detail, err := h.cards.Detail(mw.GetUserFromContext(r), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, api.CardDetailResponse{CardDetail: detail})
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "card")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateCardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	upd := service.CardUpdate{
		Title:       body.Title,
		Description: body.Description,
		Position:    body.Position,
		ListId:      body.ListId,
		DueAt:       body.DueAt,
		ClearDueAt:  body.ClearDueAt,
	}
	if err := h.cards.Update(mw.GetUserFromContext(r), id, upd); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "card")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cards.Delete(mw.GetUserFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Card member assignment

func (h *Handler) AssignCardMember(w http.ResponseWriter, r *http.Request) {
	cardId, err := pathId(r, "card")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	userId, err := pathId(r, "user")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cards.AssignMember(mw.GetUserFromContext(r), cardId, userId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) UnassignCardMember(w http.ResponseWriter, r *http.Request) {
	cardId, err := pathId(r, "card")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	userId, err := pathId(r, "user")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cards.UnassignMember(mw.GetUserFromContext(r), cardId, userId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Card label attachment

func (h *Handler) AttachLabel(w http.ResponseWriter, r *http.Request) {
	cardId, err := pathId(r, "card")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	labelId, err := pathId(r, "label")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cards.AttachLabel(mw.GetUserFromContext(r), cardId, labelId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) DetachLabel(w http.ResponseWriter, r *http.Request) {
	cardId, err := pathId(r, "card")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	labelId, err := pathId(r, "label")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cards.DetachLabel(mw.GetUserFromContext(r), cardId, labelId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
