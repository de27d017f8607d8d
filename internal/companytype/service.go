package companytype

import "log/slog"

type RepositoryAPI interface {
	GetAll() ([]CompanyType, error)
	Create(name string) (int64, error)
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAllTypes() ([]CompanyType, error) {
	types, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get company types", "error", err)
		return nil, err
	}
	if types == nil {
		types = []CompanyType{}
	}
	return types, nil
}

func (s *Service) CreateType(dto CreateTypeDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(dto.Name)
	if err != nil {
		s.logger.Error("failed to create company type", "name", dto.Name, "error", err)
		return 0, err
	}

	s.logger.Info("company type created", "type_id", id, "name", dto.Name)
	return id, nil
}

func (s *Service) DeleteType(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete company type", "type_id", id, "error", err)
		return err
	}
	return nil
}
