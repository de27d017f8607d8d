package company

import (
	"database/sql"
	"errors"

	"github.com/ulasan/company-review/internal/company"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List() ([]company.ListedCompany, error) {
	query := `
		SELECT c.id, c.name, c.address, c.type_id, c.image, c.verified, c.created_at, c.updated_at,
		       COALESCE(AVG(r.rating), 0) AS avg_rating
		FROM companies c
		LEFT JOIN reviews r ON r.company_id = c.id
		GROUP BY c.id
		ORDER BY c.id`

	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []company.ListedCompany
	for rows.Next() {
		var c company.ListedCompany
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.TypeID, &c.Image, &c.Verified,
			&c.CreatedAt, &c.UpdatedAt, &c.AvgRating); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *Repository) GetByID(id int64) (*company.Company, error) {
	var c company.Company
	query := `SELECT id, name, address, type_id, image, verified, created_at, updated_at
	          FROM companies WHERE id = ?`
	row := r.db.Raw(query, id).Row()
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.TypeID, &c.Image, &c.Verified,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Stats aggregates approved reviews only; unmoderated reviews stay out
// of the public numbers.
func (r *Repository) Stats(companyID int64) (*company.CompanyStats, error) {
	var stats company.CompanyStats
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*)
	          FROM reviews WHERE company_id = ? AND approved = true`
	row := r.db.Raw(query, companyID).Row()
	if err := row.Scan(&stats.AvgRating, &stats.ReviewCount); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *Repository) RecentReviews(companyID int64, limit int) ([]company.ProfileReview, error) {
	query := `
		SELECT r.id, r.rating, r.comment, r.created_at, r.user_id, u.name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.company_id = ? AND r.approved = true
		ORDER BY r.created_at DESC
		LIMIT ?`

	rows, err := r.db.Raw(query, companyID, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []company.ProfileReview
	for rows.Next() {
		var rv company.ProfileReview
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UserID, &rv.UserName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *Repository) Jobs(companyID int64) ([]company.ProfileJob, error) {
	query := `
		SELECT id, title, location, employment_type, salary_range, created_at
		FROM jobs WHERE company_id = ? ORDER BY created_at DESC`

	rows, err := r.db.Raw(query, companyID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []company.ProfileJob
	for rows.Next() {
		var j company.ProfileJob
		if err := rows.Scan(&j.ID, &j.Title, &j.Location, &j.EmploymentType, &j.SalaryRange, &j.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *Repository) ListWithStats() ([]company.AdminCompany, error) {
	query := `
		SELECT c.id, c.name, c.address,
		       COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0) AS avg_rating,
		       COUNT(r.id) AS review_count
		FROM companies c
		LEFT JOIN reviews r ON r.company_id = c.id
		GROUP BY c.id
		ORDER BY c.id DESC`

	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []company.AdminCompany
	for rows.Next() {
		var c company.AdminCompany
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.AvgRating, &c.ReviewCount); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *Repository) Create(dto company.CompanyDTO) (int64, error) {
	var id int64
	query := `INSERT INTO companies (name, address, type_id, image, created_at, updated_at)
	          VALUES (?, ?, ?, ?, NOW(), NOW()) RETURNING id`
	row := r.db.Raw(query, dto.Name, dto.Address, dto.TypeID, dto.Image).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) Update(id int64, dto company.CompanyDTO) error {
	query := `UPDATE companies SET name = ?, address = ?, type_id = ?, image = ?, updated_at = NOW()
	          WHERE id = ?`
	return r.db.Exec(query, dto.Name, dto.Address, dto.TypeID, dto.Image, id).Error
}

func (r *Repository) Delete(id int64) error {
	return r.db.Exec(`DELETE FROM companies WHERE id = ?`, id).Error
}
