package user

import (
	"database/sql"
	"errors"

	"github.com/ulasan/company-review/internal/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(id int64) (*user.User, error) {
	var u user.User
	var companyID sql.NullInt64

	query := `SELECT id, name, email, role_id, company_id FROM users WHERE id = ?`
	row := r.db.Raw(query, id).Row()
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &companyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if companyID.Valid {
		cid := companyID.Int64
		u.CompanyID = &cid
	}
	return &u, nil
}

func (r *Repository) ListUsers() ([]user.User, error) {
	query := `SELECT id, name, email, role_id, company_id FROM users ORDER BY id DESC`
	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		var companyID sql.NullInt64
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &companyID); err != nil {
			return nil, err
		}
		if companyID.Valid {
			cid := companyID.Int64
			u.CompanyID = &cid
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) DashboardReviews(userID int64) ([]user.DashboardReview, error) {
	query := `
		SELECT r.id, c.id, c.name, c.address, r.rating, r.comment
		FROM reviews r
		JOIN companies c ON r.company_id = c.id
		WHERE r.user_id = ?
		ORDER BY r.id DESC`

	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []user.DashboardReview
	for rows.Next() {
		var rv user.DashboardReview
		if err := rows.Scan(&rv.ID, &rv.CompanyID, &rv.CompanyName, &rv.CompanyAddress,
			&rv.Rating, &rv.Comment); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *Repository) AssignRole(userID, roleID int64) (bool, error) {
	result := r.db.Exec(`UPDATE users SET role_id = ? WHERE id = ?`, roleID, userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListRoles() ([]user.Role, error) {
	rows, err := r.db.Raw(`SELECT id, name FROM roles ORDER BY id`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []user.Role
	for rows.Next() {
		var role user.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *Repository) GetRole(id int64) (*user.Role, error) {
	var role user.Role
	row := r.db.Raw(`SELECT id, name FROM roles WHERE id = ?`, id).Row()
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *Repository) CreateRole(name string) (int64, error) {
	var id int64
	row := r.db.Raw(`INSERT INTO roles (name) VALUES (?) RETURNING id`, name).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) UpdateRole(id int64, name string) (bool, error) {
	result := r.db.Exec(`UPDATE roles SET name = ? WHERE id = ?`, name, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteRole(id int64) (bool, error) {
	result := r.db.Exec(`DELETE FROM roles WHERE id = ?`, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
