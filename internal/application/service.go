package application

import (
	"context"
	"log/slog"

	"github.com/ulasan/company-review/internal"
	"github.com/ulasan/company-review/internal/core/events"
	"github.com/ulasan/company-review/internal/schema"
)

type RepositoryAPI interface {
	GetJob(jobID int64) (*JobSummary, error)
	GetApplicant(userID int64) (*Applicant, error)
	Create(jobID, userID int64, applicantName, applicantEmail, message *string) (int64, error)
	AddFile(applicationID int64, filePath string, originalName *string) error
	ListForJob(jobID int64, status string) ([]ListedApplication, error)
	GetByID(id int64) (*Detail, error)
	UpdateStatus(id int64, status string, reviewerID *int64, reviewNote *string, withTracking bool) error
	GetForNotify(id int64) (*Detail, error)
	CompanyMemberEmails(companyID int64) ([]string, error)
}

type Service struct {
	repo         RepositoryAPI
	capabilities *schema.Capabilities
	eventBus     *events.EventBus
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, capabilities *schema.Capabilities, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		capabilities: capabilities,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Apply submits an application for a job. The applicant's name and email
// are snapshotted from the user record so later account changes do not
// rewrite hiring history. File persistence already happened in the
// handler; the side record insert is best-effort.
func (s *Service) Apply(ctx context.Context, jobID, userID int64, dto ApplyDTO) (int64, error) {
	job, err := s.repo.GetJob(jobID)
	if err != nil {
		s.logger.Error("failed to check job", "job_id", jobID, "error", err)
		return 0, err
	}
	if job == nil {
		return 0, internal.NewNotFoundError("Job not found", internal.ErrCodeJobNotFound)
	}

	applicant, err := s.repo.GetApplicant(userID)
	if err != nil {
		s.logger.Error("failed to fetch applicant", "user_id", userID, "error", err)
		return 0, err
	}

	var name, email *string
	if applicant != nil {
		name = applicant.Name
		email = applicant.Email
	}

	id, err := s.repo.Create(jobID, userID, name, email, dto.CoverLetter)
	if err != nil {
		s.logger.Error("failed to insert application", "job_id", jobID, "user_id", userID, "error", err)
		return 0, err
	}

	if dto.ResumeURL != nil {
		if err := s.repo.AddFile(id, *dto.ResumeURL, dto.ResumeName); err != nil {
			s.logger.Error("failed to save application file record", "application_id", id, "error", err)
		}
	}

	recipients, err := s.repo.CompanyMemberEmails(job.CompanyID)
	if err != nil {
		s.logger.Error("failed to fetch company member emails", "company_id", job.CompanyID, "error", err)
	} else if len(recipients) > 0 {
		event := events.NewApplicationSubmittedEvent(id, job.ID, job.Title, userID, recipients)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish application submitted event", "application_id", id, "error", err)
		}
	}

	s.logger.Info("application submitted", "application_id", id, "job_id", jobID, "user_id", userID)
	return id, nil
}

func (s *Service) ListForJob(jobID int64, status string) ([]ListedApplication, error) {
	apps, err := s.repo.ListForJob(jobID, status)
	if err != nil {
		s.logger.Error("failed to list applications", "job_id", jobID, "error", err)
		return nil, err
	}
	if apps == nil {
		apps = []ListedApplication{}
	}
	return apps, nil
}

func (s *Service) GetApplication(id int64) (*Detail, error) {
	detail, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get application", "application_id", id, "error", err)
		return nil, err
	}
	if detail == nil {
		return nil, internal.NewNotFoundError("Application not found", internal.ErrCodeApplicationNotFound)
	}
	return detail, nil
}

// Review applies a review action to an application. The status always
// updates; the audit columns update only when the schema has them. The
// applicant is notified off the request path.
func (s *Service) Review(ctx context.Context, id int64, reviewerID int64, dto ReviewDTO) (string, error) {
	newStatus, err := StatusForAction(dto.Action)
	if err != nil {
		return "", err
	}

	withTracking := s.capabilities.HasApplicationReviewTracking()
	if err := s.repo.UpdateStatus(id, newStatus, &reviewerID, dto.ReviewNote, withTracking); err != nil {
		s.logger.Error("failed to update application status", "application_id", id, "error", err)
		return "", err
	}

	detail, err := s.repo.GetForNotify(id)
	if err != nil || detail == nil {
		if err != nil {
			s.logger.Error("failed to fetch application after review", "application_id", id, "error", err)
		}
		// Review took effect; notification is best-effort.
		return newStatus, nil
	}

	var jobTitle, applicantName, applicantEmail, note string
	if detail.JobTitle != nil {
		jobTitle = *detail.JobTitle
	}
	if detail.ApplicantName != nil {
		applicantName = *detail.ApplicantName
	}
	if detail.ApplicantEmail != nil {
		applicantEmail = *detail.ApplicantEmail
	}
	if dto.ReviewNote != nil {
		note = *dto.ReviewNote
	}

	event := events.NewApplicationReviewedEvent(id, jobTitle, applicantName, applicantEmail, newStatus, note)
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish application reviewed event", "application_id", id, "error", err)
	}

	s.logger.Info("application reviewed", "application_id", id, "status", newStatus, "reviewer_id", reviewerID)
	return newStatus, nil
}
