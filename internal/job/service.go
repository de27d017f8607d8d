package job

import (
	"log/slog"

	"github.com/ulasan/company-review/internal"
)

type RepositoryAPI interface {
	ListByCompany(companyID int64) ([]Job, error)
	GetByID(id int64) (*JobDetail, error)
	CompanyExists(companyID int64) (bool, error)
	Create(companyID int64, dto JobDTO, postedBy *int64) (int64, error)
	Update(id int64, dto JobDTO) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListJobsByCompany(companyID int64) ([]Job, error) {
	jobs, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("failed to list jobs", "company_id", companyID, "error", err)
		return nil, err
	}
	if jobs == nil {
		jobs = []Job{}
	}
	return jobs, nil
}

func (s *Service) GetJob(id int64) (*JobDetail, error) {
	job, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get job", "job_id", id, "error", err)
		return nil, err
	}
	if job == nil {
		return nil, internal.NewNotFoundError("Job not found", internal.ErrCodeJobNotFound)
	}
	return job, nil
}

// CreateJob verifies the parent company exists before inserting, so a
// posting can never dangle off a deleted company.
func (s *Service) CreateJob(companyID int64, dto JobDTO, postedBy *int64) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	exists, err := s.repo.CompanyExists(companyID)
	if err != nil {
		s.logger.Error("failed to check company", "company_id", companyID, "error", err)
		return 0, err
	}
	if !exists {
		return 0, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}

	id, err := s.repo.Create(companyID, dto, postedBy)
	if err != nil {
		s.logger.Error("failed to create job", "company_id", companyID, "error", err)
		return 0, err
	}

	s.logger.Info("job created", "job_id", id, "company_id", companyID, "title", dto.Title)
	return id, nil
}

func (s *Service) UpdateJob(id int64, dto JobDTO) error {
	if _, err := s.GetJob(id); err != nil {
		return err
	}

	if err := s.repo.Update(id, dto); err != nil {
		s.logger.Error("failed to update job", "job_id", id, "error", err)
		return err
	}

	s.logger.Info("job updated", "job_id", id)
	return nil
}

func (s *Service) DeleteJob(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete job", "job_id", id, "error", err)
		return err
	}

	s.logger.Info("job deleted", "job_id", id)
	return nil
}
