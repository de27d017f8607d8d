package claim

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/ulasan/company-review/internal/auth"
	"github.com/ulasan/company-review/internal/storage"
	"github.com/ulasan/company-review/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
	Store   *storage.Store
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service, store *storage.Store) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Store:       store,
	}
}

// Submit accepts a claim as JSON or multipart with an evidenceFile. An
// uploaded file's absolute URL is folded into the evidence text.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	companyID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Company id required")
		return
	}

	var dto SubmitDTO
	if err := r.ParseMultipartForm(10 << 20); err == nil {
		if v := r.FormValue("contact_email"); v != "" {
			dto.ContactEmail = &v
		}
		if v := r.FormValue("contact_phone"); v != "" {
			dto.ContactPhone = &v
		}
		if v := r.FormValue("evidence"); v != "" {
			dto.Evidence = &v
		}

		if _, fileHeader, fErr := r.FormFile("evidenceFile"); fErr == nil {
			stored, sErr := h.Store.Save("claims", fileHeader)
			if sErr != nil {
				switch sErr {
				case storage.ErrFileTooLarge:
					h.WriteError(w, http.StatusBadRequest, "evidence file exceeds maximum size")
				case storage.ErrUnsupportedType:
					h.WriteError(w, http.StatusBadRequest, "only pdf/doc/docx/png/jpg allowed")
				default:
					h.Logger.Error("evidence upload failed", "error", sErr)
					h.WriteError(w, http.StatusInternalServerError, "upload failed")
				}
				return
			}

			fileLine := "File: " + storage.AbsoluteURL(r, stored.Path)
			if dto.Evidence != nil {
				combined := *dto.Evidence + "\n\n" + fileLine
				dto.Evidence = &combined
			} else {
				dto.Evidence = &fileLine
			}
		}
	} else {
		if decErr := json.NewDecoder(r.Body).Decode(&dto); decErr != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	id, err := h.Service.SubmitClaim(companyID, actor.ActorID(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Claim submitted",
		"id":      id,
	})
}

func (h *Handler) MyClaims(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	claims, err := h.Service.MyClaims(actor.ActorID())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, claims)
}

func (h *Handler) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.Service.ListClaims(r.URL.Query().Get("status"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, claims)
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Claim id required")
		return
	}

	var dto ReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	notified, err := h.Service.Review(r.Context(), id, actor.ActorID(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	message := "Claim reviewed"
	if notified {
		message = "Claim reviewed and claimant notified"
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}
