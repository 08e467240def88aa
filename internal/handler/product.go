package handler

import (
	"net/http"

	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/product"
	"storeadmin-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	ProductSvc product.Service
	Files      FileStore
}

func NewProductHandler(productSvc product.Service, files FileStore) *ProductHandler {
	return &ProductHandler{ProductSvc: productSvc, Files: files}
}

func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductSvc.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if products == nil {
		products = []product.Product{}
	}

	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	p, err := h.ProductSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

// saveImage stores the first uploaded file and returns its public path, or
// "" when the request carried no file.
func (h *ProductHandler) saveImage(r *http.Request) (string, error) {
	field, fh := firstFile(r)
	if fh == nil {
		return "", nil
	}

	stored, err := h.Files.Save(fh, "", field)
	if err != nil {
		return "", err
	}
	return stored.PublicPath, nil
}

// discard removes an image stored for a request that then failed.
func (h *ProductHandler) discard(r *http.Request, publicPath string) {
	if publicPath == "" {
		return
	}
	if err := h.Files.Remove(publicPath); err != nil {
		logger.FromCtx(r.Context()).Warn("failed to remove orphaned upload", zap.String("image", publicPath), zap.Error(err))
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		utils.WriteJSONError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	image, err := h.saveImage(r)
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	created, err := h.ProductSvc.Create(r.Context(), product.CreateProductInput{
		Name:          r.FormValue("name"),
		Description:   r.FormValue("description"),
		Price:         r.FormValue("price"),
		Quantity:      r.FormValue("quantity"),
		Category:      r.FormValue("category"),
		Status:        r.FormValue("status"),
		Stock:         r.FormValue("stock"),
		Discount:      r.FormValue("discount"),
		DiscountPrice: r.FormValue("discount_price"),
		Images:        image,
	})
	if err != nil {
		h.discard(r, image)
		writeError(w, r, err, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":   "Product created successfully",
		"productId": created.ID,
		"imageUrl":  created.Images,
	})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if err := parseForm(r); err != nil {
		utils.WriteJSONError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	image, err := h.saveImage(r)
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	updated, err := h.ProductSvc.Update(r.Context(), id, product.UpdateProductInput{
		Name:          r.FormValue("name"),
		Description:   r.FormValue("description"),
		Price:         r.FormValue("price"),
		Quantity:      r.FormValue("quantity"),
		Category:      r.FormValue("category"),
		Status:        r.FormValue("status"),
		Stock:         r.FormValue("stock"),
		Discount:      r.FormValue("discount"),
		DiscountPrice: r.FormValue("discount_price"),
		Images:        image,
	})
	if err != nil {
		h.discard(r, image)
		writeError(w, r, err, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Product updated successfully",
		"productId": updated.ID,
		"imageUrl":  updated.Images,
	})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if err := h.ProductSvc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
