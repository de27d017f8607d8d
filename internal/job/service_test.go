package job_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ulasan/company-review/internal"
	"github.com/ulasan/company-review/internal/job"
)

func TestJob(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Job Module Suite")
}

// Mock repository for testing
type mockJobRepository struct {
	jobs        map[int64]*job.JobDetail
	companies   map[int64]bool
	createError error
	nextID      int64
}

func newMockJobRepository() *mockJobRepository {
	return &mockJobRepository{
		jobs:      make(map[int64]*job.JobDetail),
		companies: make(map[int64]bool),
		nextID:    1,
	}
}

func (m *mockJobRepository) ListByCompany(companyID int64) ([]job.Job, error) {
	var jobs []job.Job
	for _, detail := range m.jobs {
		if detail.CompanyID == companyID {
			jobs = append(jobs, detail.Job)
		}
	}
	return jobs, nil
}

func (m *mockJobRepository) GetByID(id int64) (*job.JobDetail, error) {
	return m.jobs[id], nil
}

func (m *mockJobRepository) CompanyExists(companyID int64) (bool, error) {
	return m.companies[companyID], nil
}

func (m *mockJobRepository) Create(companyID int64, dto job.JobDTO, postedBy *int64) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	id := m.nextID
	m.nextID++
	m.jobs[id] = &job.JobDetail{
		Job: job.Job{
			ID:          id,
			CompanyID:   companyID,
			Title:       dto.Title,
			SalaryRange: dto.EffectiveSalaryRange(),
			PostedBy:    postedBy,
		},
	}
	return id, nil
}

func (m *mockJobRepository) Update(id int64, dto job.JobDTO) error {
	if detail, exists := m.jobs[id]; exists {
		detail.Title = dto.Title
	}
	return nil
}

func (m *mockJobRepository) Delete(id int64) error {
	delete(m.jobs, id)
	return nil
}

var _ = Describe("JobService", func() {
	var (
		service  *job.Service
		mockRepo *mockJobRepository
	)

	BeforeEach(func() {
		mockRepo = newMockJobRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = job.NewService(mockRepo, logger)
	})

	Describe("CreateJob", func() {
		BeforeEach(func() {
			mockRepo.companies[10] = true
		})

		It("should create a job under an existing company", func() {
			postedBy := int64(5)
			id, err := service.CreateJob(10, job.JobDTO{Title: "Go Engineer"}, &postedBy)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.jobs[id].CompanyID).To(Equal(int64(10)))
			Expect(*mockRepo.jobs[id].PostedBy).To(Equal(int64(5)))
		})

		It("should refuse to attach a job to a missing company", func() {
			_, err := service.CreateJob(99999, job.JobDTO{Title: "Go Engineer"}, nil)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCompanyNotFound))
			Expect(mockRepo.jobs).To(BeEmpty())
		})

		It("should require a title", func() {
			_, err := service.CreateJob(10, job.JobDTO{}, nil)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingField))
		})

		It("should resolve the salary alias", func() {
			salary := "100-120k"
			id, err := service.CreateJob(10, job.JobDTO{Title: "Go Engineer", Salary: &salary}, nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(*mockRepo.jobs[id].SalaryRange).To(Equal("100-120k"))
		})

		It("should surface repository errors", func() {
			mockRepo.createError = errors.New("database error")

			_, err := service.CreateJob(10, job.JobDTO{Title: "Go Engineer"}, nil)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetJob", func() {
		It("should return a not found error for a missing job", func() {
			_, err := service.GetJob(99999)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeJobNotFound))
		})
	})

	Describe("UpdateJob", func() {
		It("should check existence before updating", func() {
			err := service.UpdateJob(99999, job.JobDTO{Title: "New Title"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeJobNotFound))
		})

		It("should update an existing job", func() {
			mockRepo.companies[10] = true
			id, err := service.CreateJob(10, job.JobDTO{Title: "Old Title"}, nil)
			Expect(err).ToNot(HaveOccurred())

			Expect(service.UpdateJob(id, job.JobDTO{Title: "New Title"})).To(Succeed())
			Expect(mockRepo.jobs[id].Title).To(Equal("New Title"))
		})
	})

	Describe("ListJobsByCompany", func() {
		It("should return an empty slice rather than nil", func() {
			jobs, err := service.ListJobsByCompany(10)

			Expect(err).ToNot(HaveOccurred())
			Expect(jobs).ToNot(BeNil())
			Expect(jobs).To(BeEmpty())
		})
	})
})
