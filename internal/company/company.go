// Package company holds the company directory: listings with aggregate
// ratings, the full public profile, and admin CRUD.
package company

import (
	"time"

	"github.com/ulasan/company-review/internal"
)

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	TypeID    *int64    `json:"typeId,omitempty"`
	Image     *string   `json:"image,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListedCompany is a directory row with its aggregate rating.
type ListedCompany struct {
	Company
	AvgRating float64 `json:"avgRating"`
}

// CompanyStats aggregates approved reviews for the profile page.
type CompanyStats struct {
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int64   `json:"reviewCount"`
}

// ProfileReview is a review as shown on the company profile.
type ProfileReview struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
	UserName  *string   `json:"userName,omitempty"`
}

// ProfileJob is a job opening as shown on the company profile.
type ProfileJob struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Location       *string   `json:"location,omitempty"`
	EmploymentType *string   `json:"employment_type,omitempty"`
	SalaryRange    *string   `json:"salary_range,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullProfile is the composite payload for the company profile page.
type FullProfile struct {
	Company Company         `json:"company"`
	Stats   CompanyStats    `json:"stats"`
	Reviews []ProfileReview `json:"reviews"`
	Jobs    []ProfileJob    `json:"jobs"`
}

// AdminCompany is the moderation-dashboard row.
type AdminCompany struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     *string `json:"address,omitempty"`
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int64   `json:"reviewCount"`
}

type CompanyDTO struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	TypeID  *int64  `json:"typeId,omitempty"`
	Image   *string `json:"image,omitempty"`
}

func (dto CompanyDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeMissingField)
	}
	return nil
}
