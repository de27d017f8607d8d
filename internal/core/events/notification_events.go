package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeApplicationSubmitted = "application.submitted"
	EventTypeApplicationReviewed  = "application.reviewed"
	EventTypeClaimReviewed        = "claim.reviewed"
)

func newBase(eventType string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
	}
}

type ApplicationSubmittedEvent struct {
	BaseEvent
	ApplicationID int64    `json:"application_id"`
	JobID         int64    `json:"job_id"`
	JobTitle      string   `json:"job_title"`
	ApplicantID   int64    `json:"applicant_id"`
	Recipients    []string `json:"recipients"`
}

func NewApplicationSubmittedEvent(applicationID, jobID int64, jobTitle string, applicantID int64, recipients []string) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseEvent:     newBase(EventTypeApplicationSubmitted),
		ApplicationID: applicationID,
		JobID:         jobID,
		JobTitle:      jobTitle,
		ApplicantID:   applicantID,
		Recipients:    recipients,
	}
}

type ApplicationReviewedEvent struct {
	BaseEvent
	ApplicationID  int64  `json:"application_id"`
	JobTitle       string `json:"job_title"`
	ApplicantName  string `json:"applicant_name"`
	ApplicantEmail string `json:"applicant_email"`
	NewStatus      string `json:"new_status"`
	ReviewNote     string `json:"review_note"`
}

func NewApplicationReviewedEvent(applicationID int64, jobTitle, applicantName, applicantEmail, newStatus, reviewNote string) *ApplicationReviewedEvent {
	return &ApplicationReviewedEvent{
		BaseEvent:      newBase(EventTypeApplicationReviewed),
		ApplicationID:  applicationID,
		JobTitle:       jobTitle,
		ApplicantName:  applicantName,
		ApplicantEmail: applicantEmail,
		NewStatus:      newStatus,
		ReviewNote:     reviewNote,
	}
}

type ClaimReviewedEvent struct {
	BaseEvent
	ClaimID       int64  `json:"claim_id"`
	CompanyName   string `json:"company_name"`
	ClaimantName  string `json:"claimant_name"`
	ClaimantEmail string `json:"claimant_email"`
	NewStatus     string `json:"new_status"`
	ReviewNote    string `json:"review_note"`
}

func NewClaimReviewedEvent(claimID int64, companyName, claimantName, claimantEmail, newStatus, reviewNote string) *ClaimReviewedEvent {
	return &ClaimReviewedEvent{
		BaseEvent:     newBase(EventTypeClaimReviewed),
		ClaimID:       claimID,
		CompanyName:   companyName,
		ClaimantName:  claimantName,
		ClaimantEmail: claimantEmail,
		NewStatus:     newStatus,
		ReviewNote:    reviewNote,
	}
}
