package handler

import (
	"encoding/json"
	"net/http"

	"storeadmin-be/internal/user"
	"storeadmin-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	UserSvc user.Service
}

func NewUserHandler(userSvc user.Service) *UserHandler {
	return &UserHandler{UserSvc: userSvc}
}

func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserSvc.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if users == nil {
		users = []user.User{}
	}

	utils.WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in user.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, _, err := h.UserSvc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "User created successfully",
		"token":   token,
	})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	var in user.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.UserSvc.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "User updated successfully"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if err := h.UserSvc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
