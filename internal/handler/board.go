package handler

import (
	"net/http"

	"github.com/kanbo-dev/kanbo/internal/api"
	mw "github.com/kanbo-dev/kanbo/internal/middleware"
	"github.com/kanbo-dev/kanbo/internal/utils"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	boards, err := h.boards.Visible(user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, api.BoardListResponse{Boards: boards})
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.boards.Create(*user, body.Title, body.Description)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSONStatus(w, http.StatusCreated, api.BoardResponse{Board: board})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	board, role, err := h.boards.Get(mw.GetUserFromContext(r), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, api.BoardResponse{Board: board, Role: role})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.boards.Update(mw.GetUserFromContext(r), id, body.Title, body.Description); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "board")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.boards.Delete(mw.GetUserFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
