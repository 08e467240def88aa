package handler

import (
	"net/http"

	"storeadmin-be/internal/company"
	"storeadmin-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type CompanyHandler struct {
	CompanySvc company.Service
	Files      FileStore
}

func NewCompanyHandler(companySvc company.Service, files FileStore) *CompanyHandler {
	return &CompanyHandler{CompanySvc: companySvc, Files: files}
}

func (h *CompanyHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.CompanySvc.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch companies")
		return
	}
	if companies == nil {
		companies = []company.Company{}
	}

	utils.WriteJSON(w, http.StatusOK, companies)
}

// input reads the company form. A new logo file is stored before the row
// is written.
func (h *CompanyHandler) input(r *http.Request) (company.Input, error) {
	in := company.Input{
		Name:        utils.FormValue(r, "name"),
		Phone1:      utils.FormValue(r, "phone1"),
		Phone2:      utils.FormValue(r, "phone2"),
		City:        utils.FormValue(r, "city"),
		State:       utils.FormValue(r, "state"),
		Address:     utils.FormValue(r, "address"),
		GSTNumber:   utils.FormValue(r, "gst_number"),
		Description: utils.FormValue(r, "description"),
		GPayNumber:  utils.FormValue(r, "gpay_number"),
		GPayUPI:     utils.FormValue(r, "gpay_upi"),
		Gmail:       utils.FormValue(r, "gmail"),
		Country:     utils.FormValue(r, "country"),
	}

	if fh := namedFile(r, "logo"); fh != nil {
		stored, err := h.Files.Save(fh, "logo", "logo")
		if err != nil {
			return company.Input{}, err
		}
		in.Logo = &stored.FileName
	}

	return in, nil
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		utils.WriteJSONError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	in, err := h.input(r)
	if err != nil {
		writeError(w, r, err, "Failed to create company")
		return
	}

	id, err := h.CompanySvc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to create company")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":    "Company created",
		"company_id": id,
	})
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if err := parseForm(r); err != nil {
		utils.WriteJSONError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	in, err := h.input(r)
	if err != nil {
		writeError(w, r, err, "Failed to update company")
		return
	}

	if err := h.CompanySvc.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err, "Failed to update company")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Company updated successfully"})
}
