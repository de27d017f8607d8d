// Package job manages job postings under a company: public browsing
// plus posting and editing by company members.
package job

import (
	"time"

	"github.com/ulasan/company-review/internal"
)

type Job struct {
	ID             int64     `json:"id"`
	CompanyID      int64     `json:"companyId"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	Location       *string   `json:"location,omitempty"`
	EmploymentType *string   `json:"employment_type,omitempty"`
	SalaryRange    *string   `json:"salary_range,omitempty"`
	PostedBy       *int64    `json:"posted_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// JobDetail adds the company name for the job page.
type JobDetail struct {
	Job
	CompanyName *string `json:"companyName,omitempty"`
}

type JobDTO struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	// Salary and SalaryRange are aliases; clients send either.
	Salary      *string `json:"salary,omitempty"`
	SalaryRange *string `json:"salary_range,omitempty"`
}

func (dto JobDTO) Validate() error {
	if dto.Title == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeMissingField)
	}
	return nil
}

// EffectiveSalaryRange resolves the salary field aliases.
func (dto JobDTO) EffectiveSalaryRange() *string {
	if dto.Salary != nil {
		return dto.Salary
	}
	return dto.SalaryRange
}
