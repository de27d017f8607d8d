package job

import (
	"database/sql"
	"errors"

	"github.com/ulasan/company-review/internal/job"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByCompany(companyID int64) ([]job.Job, error) {
	query := `
		SELECT id, company_id, title, description, location, employment_type, salary_range, posted_by, created_at
		FROM jobs WHERE company_id = ? ORDER BY created_at DESC`

	rows, err := r.db.Raw(query, companyID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location,
			&j.EmploymentType, &j.SalaryRange, &j.PostedBy, &j.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *Repository) GetByID(id int64) (*job.JobDetail, error) {
	var j job.JobDetail
	query := `
		SELECT j.id, j.company_id, j.title, j.description, j.location, j.employment_type,
		       j.salary_range, j.posted_by, j.created_at, c.name
		FROM jobs j
		LEFT JOIN companies c ON c.id = j.company_id
		WHERE j.id = ?`

	row := r.db.Raw(query, id).Row()
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location,
		&j.EmploymentType, &j.SalaryRange, &j.PostedBy, &j.CreatedAt, &j.CompanyName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &j, nil
}

func (r *Repository) CompanyExists(companyID int64) (bool, error) {
	var count int64
	if err := r.db.Raw(`SELECT COUNT(*) FROM companies WHERE id = ?`, companyID).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(companyID int64, dto job.JobDTO, postedBy *int64) (int64, error) {
	var id int64
	query := `INSERT INTO jobs (company_id, title, description, location, salary_range, posted_by, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, NOW()) RETURNING id`
	row := r.db.Raw(query, companyID, dto.Title, dto.Description, dto.Location,
		dto.EffectiveSalaryRange(), postedBy).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) Update(id int64, dto job.JobDTO) error {
	query := `UPDATE jobs SET title = ?, description = ?, location = ?, salary_range = ? WHERE id = ?`
	return r.db.Exec(query, dto.Title, dto.Description, dto.Location, dto.EffectiveSalaryRange(), id).Error
}

func (r *Repository) Delete(id int64) error {
	return r.db.Exec(`DELETE FROM jobs WHERE id = ?`, id).Error
}
