package company

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/ulasan/company-review/internal/storage"
	"github.com/ulasan/company-review/internal/transport"
)

type ServiceAPI interface {
	ListCompanies() ([]ListedCompany, error)
	GetCompany(id int64) (*Company, error)
	GetFullProfile(id int64) (*FullProfile, error)
	ListCompaniesWithStats() ([]AdminCompany, error)
	CreateCompany(dto CompanyDTO) (int64, error)
	UpdateCompany(id int64, dto CompanyDTO) error
	DeleteCompany(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Store   *storage.Store
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, store *storage.Store) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Store:       store,
	}
}

func (h *Handler) companyID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.ListCompanies()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, companies)
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	company, err := h.Service.GetCompany(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, company)
}

func (h *Handler) GetFullProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	profile, err := h.Service.GetFullProfile(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) ListCompaniesWithStats(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.ListCompaniesWithStats()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var dto CompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.Service.CreateCompany(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Company created",
		"id":      id,
	})
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var dto CompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateCompany(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Company updated"})
}

func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	if err := h.Service.DeleteCompany(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Company deleted"})
}

// UploadImage stores a company logo and returns the URL the frontend can
// embed directly.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "no file uploaded")
		return
	}

	stored, err := h.Store.Save("company", fileHeader)
	if err != nil {
		switch err {
		case storage.ErrFileTooLarge:
			h.WriteError(w, http.StatusBadRequest, "file too large")
		case storage.ErrUnsupportedType:
			h.WriteError(w, http.StatusBadRequest, "only png/jpg allowed")
		default:
			h.Logger.Error("company image upload failed", "error", err)
			h.WriteError(w, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"url":  storage.AbsoluteURL(r, stored.Path),
		"path": stored.Path,
	})
}
