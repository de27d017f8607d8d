// Package claim handles company ownership claims: a member submits
// evidence, an admin approves or rejects, approval marks the company
// verified.
package claim

import (
	"time"

	"github.com/ulasan/company-review/internal"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// StatusForAction maps a review verb to the resulting claim status.
func StatusForAction(action string) (string, error) {
	switch action {
	case "approve":
		return StatusApproved, nil
	case "reject":
		return StatusRejected, nil
	default:
		return "", internal.NewValidationError("Invalid action", internal.ErrCodeInvalidAction)
	}
}

type Claim struct {
	ID           int64      `json:"id"`
	CompanyID    int64      `json:"companyId"`
	UserID       int64      `json:"userId"`
	ContactEmail *string    `json:"contact_email,omitempty"`
	ContactPhone *string    `json:"contact_phone,omitempty"`
	Evidence     *string    `json:"evidence,omitempty"`
	Status       string     `json:"status"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	ReviewedBy   *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote   *string    `json:"review_note,omitempty"`
}

// MyClaim is a claim in the claimant's own listing.
type MyClaim struct {
	Claim
	CompanyName *string `json:"companyName,omitempty"`
}

// AdminClaim is a claim row on the moderation dashboard.
type AdminClaim struct {
	Claim
	UserName    *string `json:"userName,omitempty"`
	UserEmail   *string `json:"userEmail,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
}

// SubmitDTO carries the claim form. Evidence may arrive as text, a file,
// or both; the handler folds an uploaded file's URL into Evidence.
type SubmitDTO struct {
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Evidence     *string `json:"evidence,omitempty"`
}

type ReviewDTO struct {
	Action     string  `json:"action"`
	ReviewNote *string `json:"review_note,omitempty"`
}

// NotifyInfo is what claim review needs to address the claimant. The
// claim's contact email wins over the account email.
type NotifyInfo struct {
	ClaimID      int64
	CompanyID    int64
	CompanyName  *string
	UserName     *string
	UserEmail    *string
	ContactEmail *string
}

func (n NotifyInfo) RecipientEmail() string {
	if n.ContactEmail != nil && *n.ContactEmail != "" {
		return *n.ContactEmail
	}
	if n.UserEmail != nil {
		return *n.UserEmail
	}
	return ""
}
