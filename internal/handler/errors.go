package handler

import (
	"errors"
	"net/http"

	"storeadmin-be/internal/company"
	"storeadmin-be/internal/contact"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/order"
	"storeadmin-be/internal/product"
	"storeadmin-be/internal/user"
	"storeadmin-be/internal/utils"

	"go.uber.org/zap"
)

type errorMapping struct {
	target  error
	code    int
	message string
}

var knownErrors = []errorMapping{
	{utils.ErrInvalidID, http.StatusBadRequest, "Invalid id"},
	{order.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{product.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{user.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{company.ErrCompanyNotFound, http.StatusNotFound, "Company not found"},
	{user.ErrUserExists, http.StatusBadRequest, "User already exists"},
	{user.ErrPasswordMismatch, http.StatusBadRequest, "Passwords do not match"},
	{user.ErrAllFieldsRequired, http.StatusBadRequest, "All fields are required"},
	{contact.ErrAllFieldsRequired, http.StatusBadRequest, "All fields are required"},
	{product.ErrRequiredFieldsMissing, http.StatusBadRequest, "Required fields missing"},
	{company.ErrRequiredFieldsMissing, http.StatusBadRequest, "Required fields missing"},
}

// writeError maps err to a status code. Unknown errors are logged and
// answered with fallback so storage details never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, order.ErrValidation), errors.Is(err, product.ErrInvalidNumber):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, m := range knownErrors {
		if errors.Is(err, m.target) {
			utils.WriteJSONError(w, m.message, m.code)
			return
		}
	}

	logger.FromCtx(r.Context()).Error(fallback, zap.Error(err))
	utils.WriteJSONError(w, fallback, http.StatusInternalServerError)
}
