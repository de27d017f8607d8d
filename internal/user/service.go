package user

import (
	"log/slog"

	"github.com/ulasan/company-review/internal"
)

type RepositoryAPI interface {
	GetByID(id int64) (*User, error)
	ListUsers() ([]User, error)
	DashboardReviews(userID int64) ([]DashboardReview, error)
	AssignRole(userID, roleID int64) (bool, error)
	ListRoles() ([]Role, error)
	GetRole(id int64) (*Role, error)
	CreateRole(name string) (int64, error)
	UpdateRole(id int64, name string) (bool, error)
	DeleteRole(id int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetUser(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, err
	}
	if u == nil {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	return u, nil
}

func (s *Service) ListUsers() ([]User, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// GetDashboard builds the personal dashboard: the user's reviews plus
// the distinct companies they cover, each with the latest rating.
func (s *Service) GetDashboard(userID int64) (*Dashboard, error) {
	reviews, err := s.repo.DashboardReviews(userID)
	if err != nil {
		s.logger.Error("failed to fetch dashboard reviews", "user_id", userID, "error", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []DashboardReview{}
	}

	seen := make(map[int64]bool)
	companies := []DashboardCompany{}
	for _, rv := range reviews {
		if seen[rv.CompanyID] {
			continue
		}
		seen[rv.CompanyID] = true
		companies = append(companies, DashboardCompany{
			ID:            rv.CompanyID,
			Name:          rv.CompanyName,
			Address:       rv.CompanyAddress,
			MyLastRating:  rv.Rating,
			MyLastComment: rv.Comment,
		})
	}

	return &Dashboard{Reviews: reviews, Companies: companies}, nil
}

func (s *Service) AssignRole(userID int64, dto AssignRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	updated, err := s.repo.AssignRole(userID, dto.RoleID)
	if err != nil {
		s.logger.Error("failed to assign role", "user_id", userID, "role_id", dto.RoleID, "error", err)
		return err
	}
	if !updated {
		return internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	s.logger.Info("role assigned", "user_id", userID, "role_id", dto.RoleID)
	return nil
}

func (s *Service) ListRoles() ([]Role, error) {
	roles, err := s.repo.ListRoles()
	if err != nil {
		s.logger.Error("failed to list roles", "error", err)
		return nil, err
	}
	if roles == nil {
		roles = []Role{}
	}
	return roles, nil
}

func (s *Service) GetRole(id int64) (*Role, error) {
	role, err := s.repo.GetRole(id)
	if err != nil {
		s.logger.Error("failed to get role", "role_id", id, "error", err)
		return nil, err
	}
	if role == nil {
		return nil, internal.NewNotFoundError("Role not found", internal.ErrCodeValidationFailed)
	}
	return role, nil
}

func (s *Service) CreateRole(dto RoleDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateRole(dto.Name)
	if err != nil {
		s.logger.Error("failed to create role", "name", dto.Name, "error", err)
		return 0, err
	}

	s.logger.Info("role created", "role_id", id, "name", dto.Name)
	return id, nil
}

func (s *Service) UpdateRole(id int64, dto RoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	updated, err := s.repo.UpdateRole(id, dto.Name)
	if err != nil {
		s.logger.Error("failed to update role", "role_id", id, "error", err)
		return err
	}
	if !updated {
		return internal.NewNotFoundError("Role not found", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (s *Service) DeleteRole(id int64) error {
	deleted, err := s.repo.DeleteRole(id)
	if err != nil {
		s.logger.Error("failed to delete role", "role_id", id, "error", err)
		return err
	}
	if !deleted {
		return internal.NewNotFoundError("Role not found", internal.ErrCodeValidationFailed)
	}
	return nil
}
