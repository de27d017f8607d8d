package company_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ulasan/company-review/internal"
	"github.com/ulasan/company-review/internal/company"
	"github.com/ulasan/company-review/internal/transport"
)

func TestCompany(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Company Module Suite")
}

// Mock service for handler tests
type mockCompanyService struct {
	companies map[int64]*company.Company
	created   []company.CompanyDTO
	nextID    int64
}

func newMockCompanyService() *mockCompanyService {
	return &mockCompanyService{
		companies: make(map[int64]*company.Company),
		nextID:    1,
	}
}

func (m *mockCompanyService) ListCompanies() ([]company.ListedCompany, error) {
	listed := make([]company.ListedCompany, 0, len(m.companies))
	for _, c := range m.companies {
		listed = append(listed, company.ListedCompany{Company: *c, AvgRating: 4.2})
	}
	return listed, nil
}

func (m *mockCompanyService) GetCompany(id int64) (*company.Company, error) {
	c, exists := m.companies[id]
	if !exists {
		return nil, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}
	return c, nil
}

func (m *mockCompanyService) GetFullProfile(id int64) (*company.FullProfile, error) {
	c, exists := m.companies[id]
	if !exists {
		return nil, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}
	return &company.FullProfile{
		Company: *c,
		Stats:   company.CompanyStats{AvgRating: 4.2, ReviewCount: 12},
		Reviews: []company.ProfileReview{},
		Jobs:    []company.ProfileJob{},
	}, nil
}

func (m *mockCompanyService) ListCompaniesWithStats() ([]company.AdminCompany, error) {
	return []company.AdminCompany{}, nil
}

func (m *mockCompanyService) CreateCompany(dto company.CompanyDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}
	id := m.nextID
	m.nextID++
	m.companies[id] = &company.Company{ID: id, Name: dto.Name, Address: dto.Address}
	m.created = append(m.created, dto)
	return id, nil
}

func (m *mockCompanyService) UpdateCompany(id int64, dto company.CompanyDTO) error {
	if _, exists := m.companies[id]; !exists {
		return internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}
	m.companies[id].Name = dto.Name
	return nil
}

func (m *mockCompanyService) DeleteCompany(id int64) error {
	delete(m.companies, id)
	return nil
}

var _ = Describe("Company Handler", func() {
	var (
		handler *company.Handler
		service *mockCompanyService
	)

	withRouteParam := func(req *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = newMockCompanyService()
		handler = company.NewHandler(transport.NewBaseHandler(logger), service, nil)

		id, err := service.CreateCompany(company.CompanyDTO{Name: "Acme Software"})
		Expect(err).ToNot(HaveOccurred())
		Expect(id).To(Equal(int64(1)))
	})

	Describe("ListCompanies", func() {
		It("should return the directory with aggregate ratings", func() {
			req := httptest.NewRequest(http.MethodGet, "/companies", nil)
			w := httptest.NewRecorder()

			handler.ListCompanies(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var listed []company.ListedCompany
			Expect(json.NewDecoder(w.Body).Decode(&listed)).To(Succeed())
			Expect(listed).To(HaveLen(1))
			Expect(listed[0].Name).To(Equal("Acme Software"))
			Expect(listed[0].AvgRating).To(Equal(4.2))
		})
	})

	Describe("GetCompany", func() {
		It("should return a company by id", func() {
			req := withRouteParam(httptest.NewRequest(http.MethodGet, "/companies/1", nil), "id", "1")
			w := httptest.NewRecorder()

			handler.GetCompany(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should return 404 with an error code for a missing company", func() {
			req := withRouteParam(httptest.NewRequest(http.MethodGet, "/companies/999", nil), "id", "999")
			w := httptest.NewRecorder()

			handler.GetCompany(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("COMPANY_NOT_FOUND"))
		})

		It("should reject a non-numeric id", func() {
			req := withRouteParam(httptest.NewRequest(http.MethodGet, "/companies/abc", nil), "id", "abc")
			w := httptest.NewRecorder()

			handler.GetCompany(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GetFullProfile", func() {
		It("should return the composite profile payload", func() {
			req := withRouteParam(httptest.NewRequest(http.MethodGet, "/companies/1/full", nil), "id", "1")
			w := httptest.NewRecorder()

			handler.GetFullProfile(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var profile company.FullProfile
			Expect(json.NewDecoder(w.Body).Decode(&profile)).To(Succeed())
			Expect(profile.Company.Name).To(Equal("Acme Software"))
			Expect(profile.Stats.ReviewCount).To(Equal(int64(12)))
			Expect(profile.Reviews).ToNot(BeNil())
			Expect(profile.Jobs).ToNot(BeNil())
		})
	})

	Describe("CreateCompany", func() {
		It("should create a company from a JSON body", func() {
			payload := `{"name": "Globex"}`
			req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewBufferString(payload))
			w := httptest.NewRecorder()

			handler.CreateCompany(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(service.created).To(HaveLen(2))
		})

		It("should reject a company without a name", func() {
			req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewBufferString(`{}`))
			w := httptest.NewRecorder()

			handler.CreateCompany(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("MISSING_FIELD"))
		})

		It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewBufferString("not json"))
			w := httptest.NewRecorder()

			handler.CreateCompany(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
