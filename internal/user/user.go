// Package user covers the account-facing surface: profile, the personal
// dashboard, and the admin views over accounts and roles.
package user

import "github.com/ulasan/company-review/internal"

type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	RoleID    int64  `json:"roleId"`
	CompanyID *int64 `json:"companyId,omitempty"`
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DashboardReview is one of the user's reviews with company context.
type DashboardReview struct {
	ID             int64   `json:"id"`
	CompanyID      int64   `json:"companyId"`
	CompanyName    string  `json:"companyName"`
	CompanyAddress *string `json:"companyAddress,omitempty"`
	Rating         int     `json:"rating"`
	Comment        *string `json:"comment,omitempty"`
}

// DashboardCompany is a company the user has reviewed, with their most
// recent rating on it.
type DashboardCompany struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       *string `json:"address,omitempty"`
	MyLastRating  int     `json:"myLastRating"`
	MyLastComment *string `json:"myLastComment,omitempty"`
}

type Dashboard struct {
	Reviews   []DashboardReview  `json:"reviews"`
	Companies []DashboardCompany `json:"companies"`
}

type AssignRoleDTO struct {
	RoleID int64 `json:"roleId"`
}

func (dto AssignRoleDTO) Validate() error {
	if dto.RoleID == 0 {
		return internal.NewValidationError("roleId is required", internal.ErrCodeMissingField)
	}
	return nil
}

type RoleDTO struct {
	Name string `json:"name"`
}

func (dto RoleDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("Role name is required", internal.ErrCodeMissingField)
	}
	return nil
}
