// Package review covers company ratings: public listings, member-owned
// edits and the admin moderation surface.
package review

import (
	"time"

	"github.com/ulasan/company-review/internal"
)

type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CompanyID int64     `json:"companyId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyReview is a review listed on a company page, with the author's
// display name joined in.
type CompanyReview struct {
	ID       int64   `json:"id"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment,omitempty"`
	UserID   int64   `json:"user_id"`
	UserName *string `json:"userName,omitempty"`
}

// FeedReview is a row in the public site-wide listing.
type FeedReview struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"companyId"`
	CompanyName string    `json:"companyName"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment,omitempty"`
	UserName    *string   `json:"userName,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MyReview is a review in the author's own listing, with company info.
type MyReview struct {
	ID             int64   `json:"id"`
	CompanyID      int64   `json:"companyId"`
	CompanyName    string  `json:"companyName"`
	CompanyAddress *string `json:"companyAddress,omitempty"`
	Rating         int     `json:"rating"`
	Comment        *string `json:"comment,omitempty"`
}

// AdminReview is the moderation row. Approved is only populated when the
// approval column exists.
type AdminReview struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	UserName    string  `json:"userName"`
	CompanyID   int64   `json:"companyId"`
	CompanyName string  `json:"companyName"`
	Rating      int     `json:"rating"`
	Comment     *string `json:"comment,omitempty"`
	Approved    *bool   `json:"approved,omitempty"`
}

// AdminReviewList carries the capability flag so the dashboard knows
// whether to render approval controls.
type AdminReviewList struct {
	HasApproved bool          `json:"hasApproved"`
	Reviews     []AdminReview `json:"reviews"`
}

type CreateReviewDTO struct {
	CompanyID int64   `json:"companyId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
}

func (dto CreateReviewDTO) Validate() error {
	if dto.CompanyID == 0 {
		return internal.NewValidationError("companyId is required", internal.ErrCodeMissingField)
	}
	return validateRating(dto.Rating)
}

type UpdateReviewDTO struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

func (dto UpdateReviewDTO) Validate() error {
	return validateRating(dto.Rating)
}

type ApprovalDTO struct {
	Approved bool `json:"approved"`
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return internal.NewValidationError("rating must be between 1 and 5", internal.ErrCodeInvalidRating)
	}
	return nil
}
