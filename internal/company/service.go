package company

import (
	"log/slog"

	"github.com/ulasan/company-review/internal"
)

type RepositoryAPI interface {
	List() ([]ListedCompany, error)
	GetByID(id int64) (*Company, error)
	Stats(companyID int64) (*CompanyStats, error)
	RecentReviews(companyID int64, limit int) ([]ProfileReview, error)
	Jobs(companyID int64) ([]ProfileJob, error)
	ListWithStats() ([]AdminCompany, error)
	Create(dto CompanyDTO) (int64, error)
	Update(id int64, dto CompanyDTO) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListCompanies() ([]ListedCompany, error) {
	companies, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list companies", "error", err)
		return nil, err
	}
	if companies == nil {
		companies = []ListedCompany{}
	}
	return companies, nil
}

func (s *Service) GetCompany(id int64) (*Company, error) {
	company, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get company", "company_id", id, "error", err)
		return nil, err
	}
	if company == nil {
		return nil, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}
	return company, nil
}

// GetFullProfile assembles the profile page payload: company fields,
// approved-review aggregates, recent reviews and open jobs.
func (s *Service) GetFullProfile(id int64) (*FullProfile, error) {
	company, err := s.GetCompany(id)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Stats(id)
	if err != nil {
		s.logger.Error("failed to get company stats", "company_id", id, "error", err)
		return nil, err
	}

	reviews, err := s.repo.RecentReviews(id, 20)
	if err != nil {
		s.logger.Error("failed to get company reviews", "company_id", id, "error", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []ProfileReview{}
	}

	jobs, err := s.repo.Jobs(id)
	if err != nil {
		s.logger.Error("failed to get company jobs", "company_id", id, "error", err)
		return nil, err
	}
	if jobs == nil {
		jobs = []ProfileJob{}
	}

	return &FullProfile{
		Company: *company,
		Stats:   *stats,
		Reviews: reviews,
		Jobs:    jobs,
	}, nil
}

func (s *Service) ListCompaniesWithStats() ([]AdminCompany, error) {
	companies, err := s.repo.ListWithStats()
	if err != nil {
		s.logger.Error("failed to list companies with stats", "error", err)
		return nil, err
	}
	if companies == nil {
		companies = []AdminCompany{}
	}
	return companies, nil
}

func (s *Service) CreateCompany(dto CompanyDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(dto)
	if err != nil {
		s.logger.Error("failed to create company", "name", dto.Name, "error", err)
		return 0, err
	}

	s.logger.Info("company created", "company_id", id, "name", dto.Name)
	return id, nil
}

func (s *Service) UpdateCompany(id int64, dto CompanyDTO) error {
	if _, err := s.GetCompany(id); err != nil {
		return err
	}

	if err := s.repo.Update(id, dto); err != nil {
		s.logger.Error("failed to update company", "company_id", id, "error", err)
		return err
	}

	s.logger.Info("company updated", "company_id", id)
	return nil
}

func (s *Service) DeleteCompany(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete company", "company_id", id, "error", err)
		return err
	}

	s.logger.Info("company deleted", "company_id", id)
	return nil
}
