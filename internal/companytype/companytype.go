// Package companytype manages the fixed catalog of industry types a
// company can belong to.
package companytype

import "github.com/ulasan/company-review/internal"

type CompanyType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateTypeDTO struct {
	Name string `json:"name"`
}

func (dto CreateTypeDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeMissingField)
	}
	return nil
}
