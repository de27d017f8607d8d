package claim

import (
	"context"
	"log/slog"

	"github.com/ulasan/company-review/internal/core/events"
)

type RepositoryAPI interface {
	Create(companyID, userID int64, dto SubmitDTO) (int64, error)
	ListByUser(userID int64) ([]MyClaim, error)
	ListAll(status string) ([]AdminClaim, error)
	UpdateStatus(id int64, status string, reviewerID int64, reviewNote *string) error
	GetNotifyInfo(id int64) (*NotifyInfo, error)
	MarkCompanyVerified(companyID int64) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) SubmitClaim(companyID, userID int64, dto SubmitDTO) (int64, error) {
	id, err := s.repo.Create(companyID, userID, dto)
	if err != nil {
		s.logger.Error("failed to insert claim", "company_id", companyID, "user_id", userID, "error", err)
		return 0, err
	}

	s.logger.Info("claim submitted", "claim_id", id, "company_id", companyID, "user_id", userID)
	return id, nil
}

func (s *Service) MyClaims(userID int64) ([]MyClaim, error) {
	claims, err := s.repo.ListByUser(userID)
	if err != nil {
		s.logger.Error("failed to list user claims", "user_id", userID, "error", err)
		return nil, err
	}
	if claims == nil {
		claims = []MyClaim{}
	}
	return claims, nil
}

func (s *Service) ListClaims(status string) ([]AdminClaim, error) {
	claims, err := s.repo.ListAll(status)
	if err != nil {
		s.logger.Error("failed to list claims", "status", status, "error", err)
		return nil, err
	}
	if claims == nil {
		claims = []AdminClaim{}
	}
	return claims, nil
}

// Review decides a claim. Approval marks the company verified; the flag
// is never unset on rejection, so re-reviewing an approved claim cannot
// strip a verification someone else may rely on. A claim that vanishes
// between the update and the notification fetch is still a success.
func (s *Service) Review(ctx context.Context, id int64, reviewerID int64, dto ReviewDTO) (bool, error) {
	newStatus, err := StatusForAction(dto.Action)
	if err != nil {
		return false, err
	}

	if err := s.repo.UpdateStatus(id, newStatus, reviewerID, dto.ReviewNote); err != nil {
		s.logger.Error("failed to update claim status", "claim_id", id, "error", err)
		return false, err
	}

	info, err := s.repo.GetNotifyInfo(id)
	if err != nil || info == nil {
		if err != nil {
			s.logger.Error("failed to fetch claim for notification", "claim_id", id, "error", err)
		}
		return false, nil
	}

	if newStatus == StatusApproved {
		if err := s.repo.MarkCompanyVerified(info.CompanyID); err != nil {
			s.logger.Error("failed to mark company verified", "company_id", info.CompanyID, "error", err)
		}
	}

	var companyName, claimantName, note string
	if info.CompanyName != nil {
		companyName = *info.CompanyName
	}
	if info.UserName != nil {
		claimantName = *info.UserName
	}
	if dto.ReviewNote != nil {
		note = *dto.ReviewNote
	}

	event := events.NewClaimReviewedEvent(id, companyName, claimantName, info.RecipientEmail(), newStatus, note)
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish claim reviewed event", "claim_id", id, "error", err)
	}

	s.logger.Info("claim reviewed", "claim_id", id, "status", newStatus, "reviewer_id", reviewerID)
	return true, nil
}
