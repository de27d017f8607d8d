package application

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/ulasan/company-review/internal/application"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
	// withTracking guards references to the optional review-audit
	// columns; older schemas lack them.
	withTracking bool
}

func NewRepository(db *gorm.DB, withTracking bool) *Repository {
	return &Repository{db: db, withTracking: withTracking}
}

func (r *Repository) GetJob(jobID int64) (*application.JobSummary, error) {
	var job application.JobSummary
	row := r.db.Raw(`SELECT id, company_id, title FROM jobs WHERE id = ?`, jobID).Row()
	if err := row.Scan(&job.ID, &job.CompanyID, &job.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *Repository) GetApplicant(userID int64) (*application.Applicant, error) {
	var applicant application.Applicant
	row := r.db.Raw(`SELECT id, name, email FROM users WHERE id = ?`, userID).Row()
	if err := row.Scan(&applicant.ID, &applicant.Name, &applicant.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &applicant, nil
}

func (r *Repository) Create(jobID, userID int64, applicantName, applicantEmail, message *string) (int64, error) {
	var id int64
	query := `INSERT INTO applications (job_id, user_id, applicant_name, applicant_email, message, status, created_at)
	          VALUES (?, ?, ?, ?, ?, 'applied', NOW()) RETURNING id`
	row := r.db.Raw(query, jobID, userID, applicantName, applicantEmail, message).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) AddFile(applicationID int64, filePath string, originalName *string) error {
	query := `INSERT INTO application_files (application_id, file_path, original_name, created_at)
	          VALUES (?, ?, ?, NOW())`
	return r.db.Exec(query, applicationID, filePath, originalName).Error
}

func (r *Repository) ListForJob(jobID int64, status string) ([]application.ListedApplication, error) {
	query := `
		SELECT a.id, a.job_id, a.user_id,
		       COALESCE(a.applicant_name, u.name), COALESCE(a.applicant_email, u.email),
		       a.message, a.status, a.created_at
		FROM applications a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.job_id = ?`
	args := []interface{}{jobID}
	if status != "" {
		query += ` AND a.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY a.created_at DESC`

	rows, err := r.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []application.ListedApplication
	var ids []int64
	for rows.Next() {
		var a application.ListedApplication
		if err := rows.Scan(&a.ID, &a.JobID, &a.UserID, &a.ApplicantName, &a.ApplicantEmail,
			&a.Message, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Files = []application.File{}
		apps = append(apps, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return apps, nil
	}

	files, err := r.filesFor(ids)
	if err != nil {
		// Listings still render without attachments.
		return apps, nil
	}

	byApp := make(map[int64][]application.File)
	for _, f := range files {
		byApp[f.ApplicationID] = append(byApp[f.ApplicationID], f)
	}
	for i := range apps {
		if fs, ok := byApp[apps[i].ID]; ok {
			apps[i].Files = fs
		}
	}
	return apps, nil
}

func (r *Repository) filesFor(applicationIDs []int64) ([]application.File, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(applicationIDs)), ",")
	query := `SELECT id, application_id, file_path, original_name, created_at
	          FROM application_files WHERE application_id IN (` + placeholders + `)`

	args := make([]interface{}, len(applicationIDs))
	for i, id := range applicationIDs {
		args[i] = id
	}

	rows, err := r.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []application.File
	for rows.Next() {
		var f application.File
		if err := rows.Scan(&f.ID, &f.ApplicationID, &f.FilePath, &f.OriginalName, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *Repository) GetByID(id int64) (*application.Detail, error) {
	var d application.Detail

	trackingCols := ""
	if r.withTracking {
		trackingCols = "a.reviewed_by, a.reviewed_at, a.review_note,"
	}
	query := `
		SELECT a.id, a.job_id, j.title, a.status, a.message, a.created_at,
		       ` + trackingCols + `
		       COALESCE(a.applicant_name, u.name), COALESCE(a.applicant_email, u.email)
		FROM applications a
		LEFT JOIN users u ON u.id = a.user_id
		LEFT JOIN jobs j ON j.id = a.job_id
		WHERE a.id = ?`

	dest := []interface{}{&d.ID, &d.JobID, &d.JobTitle, &d.Status, &d.Message, &d.CreatedAt}
	if r.withTracking {
		dest = append(dest, &d.ReviewedBy, &d.ReviewedAt, &d.ReviewNote)
	}
	dest = append(dest, &d.ApplicantName, &d.ApplicantEmail)

	row := r.db.Raw(query, id).Row()
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	files, err := r.filesFor([]int64{id})
	if err != nil {
		d.Files = []application.File{}
		return &d, nil
	}
	if files == nil {
		files = []application.File{}
	}
	d.Files = files
	return &d, nil
}

func (r *Repository) UpdateStatus(id int64, status string, reviewerID *int64, reviewNote *string, withTracking bool) error {
	if withTracking {
		query := `UPDATE applications
		          SET status = ?, reviewed_by = ?, reviewed_at = NOW(), review_note = ?
		          WHERE id = ?`
		return r.db.Exec(query, status, reviewerID, reviewNote, id).Error
	}
	return r.db.Exec(`UPDATE applications SET status = ? WHERE id = ?`, status, id).Error
}

// GetForNotify joins the live users row, so status mail goes to the
// account's current email, not the address captured at apply time.
func (r *Repository) GetForNotify(id int64) (*application.Detail, error) {
	var d application.Detail
	query := `
		SELECT a.id, a.job_id, a.status, a.message, a.created_at,
		       u.name, u.email, j.title
		FROM applications a
		LEFT JOIN users u ON u.id = a.user_id
		LEFT JOIN jobs j ON j.id = a.job_id
		WHERE a.id = ?`

	row := r.db.Raw(query, id).Row()
	if err := row.Scan(&d.ID, &d.JobID, &d.Status, &d.Message, &d.CreatedAt,
		&d.ApplicantName, &d.ApplicantEmail, &d.JobTitle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repository) CompanyMemberEmails(companyID int64) ([]string, error) {
	rows, err := r.db.Raw(`SELECT email FROM users WHERE company_id = ?`, companyID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email sql.NullString
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		if email.Valid && email.String != "" {
			emails = append(emails, email.String)
		}
	}
	return emails, rows.Err()
}
