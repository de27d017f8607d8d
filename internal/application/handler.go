package application

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

// Apply accepts a multipart submission with an optional resume file, or
// a plain form/JSON body with an external resume URL.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var dto ApplyDTO
	if err := r.ParseMultipartForm(10 << 20); err == nil {
		if v := r.FormValue("cover_letter"); v != "" {
			dto.CoverLetter = &v
		} else if v := r.FormValue("message"); v != "" {
			dto.CoverLetter = &v
		}

		if _, fileHeader, fErr := r.FormFile("resume"); fErr == nil {
			stored, sErr := h.Store.Save("resumes", fileHeader)
			if sErr != nil {
				switch sErr {
				case storage.ErrFileTooLarge:
					h.WriteError(w, http.StatusBadRequest, "resume exceeds maximum size")
				case storage.ErrUnsupportedType:
					h.WriteError(w, http.StatusBadRequest, "only pdf/doc/docx/png/jpg allowed")
				default:
					h.Logger.Error("resume upload failed", "error", sErr)
					h.WriteError(w, http.StatusInternalServerError, "upload failed")
				}
				return
			}
			dto.ResumeURL = &stored.Path
			dto.ResumeName = &stored.OriginalName
		} else if v := r.FormValue("resumeUrl"); v != "" {
			dto.ResumeURL = &v
			if name := r.FormValue("resumeName"); name != "" {
				dto.ResumeName = &name
			}
		}
	} else {
		var body struct {
			CoverLetter *string `json:"cover_letter"`
			Message     *string `json:"message"`
			ResumeURL   *string `json:"resumeUrl"`
			ResumeName  *string `json:"resumeName"`
		}
		if decErr := json.NewDecoder(r.Body).Decode(&body); decErr == nil {
			dto.CoverLetter = body.CoverLetter
			if dto.CoverLetter == nil {
				dto.CoverLetter = body.Message
			}
			dto.ResumeURL = body.ResumeURL
			dto.ResumeName = body.ResumeName
		}
	}

	id, err := h.Service.Apply(r.Context(), jobID, actor.ActorID(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Application submitted",
		"id":      id,
	})
}

func (h *Handler) ListForJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(chi.URLParam(r, "jobId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	apps, err := h.Service.ListForJob(jobID, r.URL.Query().Get("status"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	for i := range apps {
		for j := range apps[i].Files {
			apps[i].Files[j].URL = storage.AbsoluteURL(r, apps[i].Files[j].FilePath)
		}
	}

	h.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	detail, err := h.Service.GetApplication(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	for i := range detail.Files {
		detail.Files[i].URL = storage.AbsoluteURL(r, detail.Files[i].FilePath)
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	var dto ReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.Service.Review(r.Context(), id, actor.ActorID(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Application reviewed and applicant notified",
		"status":  status,
	})
}
