package application_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ulasan/company-review/internal/application"
	"github.com/ulasan/company-review/internal/auth"
	"github.com/ulasan/company-review/internal/core/events"
	"github.com/ulasan/company-review/internal/schema"
	"github.com/ulasan/company-review/internal/storage"
	"github.com/ulasan/company-review/internal/transport"
)

var _ = Describe("Application Handler", func() {
	var (
		handler  *application.Handler
		mockRepo *mockApplicationRepository
		baseDir  string
	)

	withRouteParam := func(req *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	withActor := func(req *http.Request, userID int64) *http.Request {
		ctx := auth.ContextWithActor(req.Context(), auth.UnresolvedContext{ID: userID})
		return req.WithContext(ctx)
	}

	BeforeEach(func() {
		var err error
		baseDir, err = os.MkdirTemp("", "application-test-*")
		Expect(err).ToNot(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockRepo = newMockApplicationRepository()
		mockRepo.jobs[100] = &application.JobSummary{ID: 100, CompanyID: 10, Title: "Go Engineer"}
		name := "Jane"
		email := "jane@example.com"
		mockRepo.applicants[5] = &application.Applicant{ID: 5, Name: &name, Email: &email}

		bus := events.NewEventBus(logger)
		service := application.NewService(mockRepo, schema.FromColumns(schema.Optional), bus, logger)
		store := storage.NewStore(baseDir, "/uploads", 1<<20, logger)
		handler = application.NewHandler(transport.NewBaseHandler(logger), service, store)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(baseDir)).To(Succeed())
	})

	Describe("Apply", func() {
		It("should accept a multipart submission with a resume upload", func() {
			var body bytes.Buffer
			writer := multipart.NewWriter(&body)
			Expect(writer.WriteField("cover_letter", "I would like to apply")).To(Succeed())
			part, err := writer.CreateFormFile("resume", "cv.pdf")
			Expect(err).ToNot(HaveOccurred())
			_, err = part.Write([]byte("fake pdf content"))
			Expect(err).ToNot(HaveOccurred())
			Expect(writer.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/jobs/100/apply", &body)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			req = withActor(withRouteParam(req, "id", "100"), 5)
			w := httptest.NewRecorder()

			handler.Apply(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var response struct {
				ID int64 `json:"id"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.ID).To(BeNumerically(">", 0))
			Expect(mockRepo.files[response.ID]).To(HaveLen(1))
			Expect(mockRepo.files[response.ID][0]).To(HavePrefix("/uploads/resumes/"))
		})

		It("should accept a JSON submission with an external resume URL", func() {
			payload := `{"cover_letter": "hire me", "resumeUrl": "https://cdn.example.com/cv.pdf"}`
			req := httptest.NewRequest(http.MethodPost, "/jobs/100/apply", bytes.NewBufferString(payload))
			req.Header.Set("Content-Type", "application/json")
			req = withActor(withRouteParam(req, "id", "100"), 5)
			w := httptest.NewRecorder()

			handler.Apply(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("should reject an unauthenticated request", func() {
			req := httptest.NewRequest(http.MethodPost, "/jobs/100/apply", nil)
			req = withRouteParam(req, "id", "100")
			w := httptest.NewRecorder()

			handler.Apply(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 404 for a missing job", func() {
			req := httptest.NewRequest(http.MethodPost, "/jobs/99999/apply", bytes.NewBufferString("{}"))
			req.Header.Set("Content-Type", "application/json")
			req = withActor(withRouteParam(req, "id", "99999"), 5)
			w := httptest.NewRecorder()

			handler.Apply(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("JOB_NOT_FOUND"))
		})

		It("should reject a resume with a disallowed extension", func() {
			var body bytes.Buffer
			writer := multipart.NewWriter(&body)
			part, err := writer.CreateFormFile("resume", "script.sh")
			Expect(err).ToNot(HaveOccurred())
			_, err = part.Write([]byte("#!/bin/sh"))
			Expect(err).ToNot(HaveOccurred())
			Expect(writer.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/jobs/100/apply", &body)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			req = withActor(withRouteParam(req, "id", "100"), 5)
			w := httptest.NewRecorder()

			handler.Apply(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("ListForJob", func() {
		It("should rewrite stored file paths into absolute URLs", func() {
			mockRepo.listings = []application.ListedApplication{
				{
					Application: application.Application{ID: 1, JobID: 100, Status: application.StatusApplied},
					Files: []application.File{
						{ID: 1, ApplicationID: 1, FilePath: "/uploads/resumes/123-abc.pdf"},
					},
				},
			}

			req := httptest.NewRequest(http.MethodGet, "http://api.example.com/jobs/100/applications", nil)
			req = withRouteParam(req, "jobId", "100")
			w := httptest.NewRecorder()

			handler.ListForJob(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var listed []application.ListedApplication
			Expect(json.NewDecoder(w.Body).Decode(&listed)).To(Succeed())
			Expect(listed).To(HaveLen(1))
			Expect(listed[0].Files[0].URL).To(Equal("http://api.example.com/uploads/resumes/123-abc.pdf"))
		})
	})
})
