package review

import (
	"log/slog"

	"github.com/ulasan/company-review/internal"
	"github.com/ulasan/company-review/internal/schema"
)

type RepositoryAPI interface {
	ListRecent(limit int) ([]FeedReview, error)
	ListByCompany(companyID int64) ([]CompanyReview, error)
	ListByUser(userID int64) ([]MyReview, error)
	Create(userID int64, dto CreateReviewDTO) (int64, error)
	UpdateOwned(id, userID int64, dto UpdateReviewDTO) (bool, error)
	DeleteOwned(id, userID int64, isAdmin bool) (bool, error)
	AdminList(includeApproved bool) ([]AdminReview, error)
	AdminUpdate(id int64, dto UpdateReviewDTO) error
	AdminDelete(id int64) error
	SetApproval(id int64, approved bool) error
}

type Service struct {
	repo         RepositoryAPI
	capabilities *schema.Capabilities
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, capabilities *schema.Capabilities, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		capabilities: capabilities,
		logger:       logger,
	}
}

// recentFeedLimit caps the public site-wide listing.
const recentFeedLimit = 50

func (s *Service) ListRecent() ([]FeedReview, error) {
	reviews, err := s.repo.ListRecent(recentFeedLimit)
	if err != nil {
		s.logger.Error("failed to list recent reviews", "error", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []FeedReview{}
	}
	return reviews, nil
}

func (s *Service) ListByCompany(companyID int64) ([]CompanyReview, error) {
	reviews, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("failed to list company reviews", "company_id", companyID, "error", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []CompanyReview{}
	}
	return reviews, nil
}

func (s *Service) ListMine(userID int64) ([]MyReview, error) {
	reviews, err := s.repo.ListByUser(userID)
	if err != nil {
		s.logger.Error("failed to list user reviews", "user_id", userID, "error", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []MyReview{}
	}
	return reviews, nil
}

func (s *Service) CreateReview(userID int64, dto CreateReviewDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(userID, dto)
	if err != nil {
		s.logger.Error("failed to create review", "user_id", userID, "company_id", dto.CompanyID, "error", err)
		return 0, err
	}

	s.logger.Info("review created", "review_id", id, "user_id", userID, "company_id", dto.CompanyID)
	return id, nil
}

// UpdateReview lets only the author edit; the ownership condition is in
// the UPDATE itself so a non-author cannot tell a foreign review from a
// missing one by probing.
func (s *Service) UpdateReview(id, userID int64, dto UpdateReviewDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	updated, err := s.repo.UpdateOwned(id, userID, dto)
	if err != nil {
		s.logger.Error("failed to update review", "review_id", id, "error", err)
		return err
	}
	if !updated {
		return internal.NewForbiddenError("Not authorized to update this review", internal.ErrCodeUnauthorizedAccess)
	}

	s.logger.Info("review updated", "review_id", id, "user_id", userID)
	return nil
}

func (s *Service) DeleteReview(id, userID int64, isAdmin bool) error {
	deleted, err := s.repo.DeleteOwned(id, userID, isAdmin)
	if err != nil {
		s.logger.Error("failed to delete review", "review_id", id, "error", err)
		return err
	}
	if !deleted {
		return internal.NewForbiddenError("Not authorized to delete this review", internal.ErrCodeUnauthorizedAccess)
	}

	s.logger.Info("review deleted", "review_id", id, "user_id", userID, "admin", isAdmin)
	return nil
}

// AdminListReviews returns every review for moderation. The approval
// flag rides along only when the schema supports it.
func (s *Service) AdminListReviews() (*AdminReviewList, error) {
	hasApproved := s.capabilities.HasReviewApproval()

	reviews, err := s.repo.AdminList(hasApproved)
	if err != nil {
		s.logger.Error("failed to list reviews for moderation", "error", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []AdminReview{}
	}

	return &AdminReviewList{HasApproved: hasApproved, Reviews: reviews}, nil
}

func (s *Service) AdminUpdateReview(id int64, dto UpdateReviewDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.AdminUpdate(id, dto); err != nil {
		s.logger.Error("failed to update review", "review_id", id, "error", err)
		return err
	}

	s.logger.Info("review updated by moderator", "review_id", id)
	return nil
}

func (s *Service) AdminDeleteReview(id int64) error {
	if err := s.repo.AdminDelete(id); err != nil {
		s.logger.Error("failed to delete review", "review_id", id, "error", err)
		return err
	}

	s.logger.Info("review deleted by moderator", "review_id", id)
	return nil
}

// SetApproval toggles a review's visibility. Without the approval column
// the operation fails up front with the migration hint instead of a
// broken UPDATE.
func (s *Service) SetApproval(id int64, approved bool) error {
	if !s.capabilities.HasReviewApproval() {
		return internal.NewValidationError(
			"The 'approved' column does not exist on 'reviews'.",
			internal.ErrCodeValidationFailed,
		).WithDetails(map[string]string{
			"fix": "Run: ALTER TABLE reviews ADD COLUMN approved BOOLEAN NOT NULL DEFAULT true;",
		})
	}

	if err := s.repo.SetApproval(id, approved); err != nil {
		s.logger.Error("failed to set review approval", "review_id", id, "error", err)
		return err
	}

	s.logger.Info("review approval updated", "review_id", id, "approved", approved)
	return nil
}
