// Package application handles job applications: submission with resume
// upload, listings for the hiring side and the review workflow.
package application

import (
	"time"

	"github.com/ulasan/company-review/internal"
)

// Application statuses. An application starts as applied and moves to
// one of the review outcomes.
const (
	StatusApplied     = "applied"
	StatusShortlisted = "shortlisted"
	StatusAccepted    = "accepted"
	StatusRejected    = "rejected"
)

// reviewActions maps a review verb to the status it produces.
var reviewActions = map[string]string{
	"shortlist": StatusShortlisted,
	"accept":    StatusAccepted,
	"reject":    StatusRejected,
}

// StatusForAction resolves a review action. Unknown actions are a
// validation failure and never touch the record.
func StatusForAction(action string) (string, error) {
	status, ok := reviewActions[action]
	if !ok {
		return "", internal.NewValidationError("Invalid action", internal.ErrCodeInvalidAction)
	}
	return status, nil
}

type Application struct {
	ID             int64     `json:"id"`
	JobID          int64     `json:"job_id"`
	UserID         int64     `json:"user_id"`
	ApplicantName  *string   `json:"applicant_name,omitempty"`
	ApplicantEmail *string   `json:"applicant_email,omitempty"`
	Message        *string   `json:"message,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// File is a stored attachment. URL is the absolute form rewritten per
// request; FilePath is what sits in the database.
type File struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	FilePath      string    `json:"file_path"`
	OriginalName  *string   `json:"original_name,omitempty"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListedApplication is one row in the hiring-side listing.
type ListedApplication struct {
	Application
	Files []File `json:"files"`
}

// Detail is the single-application payload with review audit fields.
type Detail struct {
	ID             int64      `json:"id"`
	JobID          int64      `json:"jobId"`
	JobTitle       *string    `json:"jobTitle,omitempty"`
	Status         string     `json:"status"`
	Message        *string    `json:"message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ReviewedBy     *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote     *string    `json:"review_note,omitempty"`
	ApplicantName  *string    `json:"applicantName,omitempty"`
	ApplicantEmail *string    `json:"applicantEmail,omitempty"`
	Files          []File     `json:"files"`
}

// ApplyDTO carries the multipart form fields of a submission. The cover
// letter arrives as either cover_letter or message.
type ApplyDTO struct {
	CoverLetter *string
	ResumeURL   *string
	ResumeName  *string
}

type ReviewDTO struct {
	Action     string  `json:"action"`
	ReviewNote *string `json:"review_note,omitempty"`
}

// JobSummary is the slice of a job the application flow needs.
type JobSummary struct {
	ID        int64
	CompanyID int64
	Title     string
}

// Applicant is the user snapshot taken at submission time.
type Applicant struct {
	ID    int64
	Name  *string
	Email *string
}
