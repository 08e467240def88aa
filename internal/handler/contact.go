package handler

import (
	"encoding/json"
	"net/http"

	"storeadmin-be/internal/contact"
	"storeadmin-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type ContactHandler struct {
	ContactSvc contact.Service
}

func NewContactHandler(contactSvc contact.Service) *ContactHandler {
	return &ContactHandler{ContactSvc: contactSvc}
}

func (h *ContactHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.ContactSvc.List(r.Context(), contact.Filter{
		Name:  r.URL.Query().Get("name"),
		Email: r.URL.Query().Get("email"),
	})
	if err != nil {
		writeError(w, r, err, "Failed to fetch contacts")
		return
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in contact.Contact
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.ContactSvc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to create contact")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{"contact": created})
}
