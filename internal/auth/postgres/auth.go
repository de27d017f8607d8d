package auth

import (
	"database/sql"
	"errors"

	"github.com/ulasan/company-review/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByEmail(email string) (*auth.Account, error) {
	var account auth.Account
	var companyID sql.NullInt64

	query := `SELECT id, name, email, password_hash, role_id, company_id FROM users WHERE email = ?`
	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.RoleID, &companyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if companyID.Valid {
		cid := companyID.Int64
		account.CompanyID = &cid
	}
	return &account, nil
}

func (r *Repository) CountUsers() (int64, error) {
	var count int64
	if err := r.db.Raw(`SELECT COUNT(*) FROM users`).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) Create(account *auth.Account) error {
	query := `INSERT INTO users (name, email, password_hash, role_id, company_id, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, NOW(), NOW()) RETURNING id`
	row := r.db.Raw(query, account.Name, account.Email, account.PasswordHash, account.RoleID, account.CompanyID).Row()
	return row.Scan(&account.ID)
}
