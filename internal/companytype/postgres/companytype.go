package companytype

import (
	"github.com/ulasan/company-review/internal/companytype"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll() ([]companytype.CompanyType, error) {
	rows, err := r.db.Raw(`SELECT id, name FROM company_types ORDER BY id`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []companytype.CompanyType
	for rows.Next() {
		var t companytype.CompanyType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *Repository) Create(name string) (int64, error) {
	var id int64
	row := r.db.Raw(`INSERT INTO company_types (name) VALUES (?) RETURNING id`, name).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) Delete(id int64) error {
	return r.db.Exec(`DELETE FROM company_types WHERE id = ?`, id).Error
}
