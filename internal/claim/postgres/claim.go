package claim

import (
	"database/sql"
	"errors"

	"github.com/ulasan/company-review/internal/claim"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(companyID, userID int64, dto claim.SubmitDTO) (int64, error) {
	var id int64
	query := `INSERT INTO company_claims (company_id, user_id, contact_email, contact_phone, evidence, status, submitted_at)
	          VALUES (?, ?, ?, ?, ?, 'pending', NOW()) RETURNING id`
	row := r.db.Raw(query, companyID, userID, dto.ContactEmail, dto.ContactPhone, dto.Evidence).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) ListByUser(userID int64) ([]claim.MyClaim, error) {
	query := `
		SELECT c.id, c.company_id, c.user_id, c.contact_email, c.contact_phone, c.evidence,
		       c.status, c.submitted_at, c.reviewed_by, c.reviewed_at, c.review_note, co.name
		FROM company_claims c
		LEFT JOIN companies co ON co.id = c.company_id
		WHERE c.user_id = ?
		ORDER BY c.submitted_at DESC`

	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.MyClaim
	for rows.Next() {
		var c claim.MyClaim
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.UserID, &c.ContactEmail, &c.ContactPhone,
			&c.Evidence, &c.Status, &c.SubmittedAt, &c.ReviewedBy, &c.ReviewedAt, &c.ReviewNote,
			&c.CompanyName); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (r *Repository) ListAll(status string) ([]claim.AdminClaim, error) {
	query := `
		SELECT c.id, c.company_id, c.user_id, c.contact_email, c.contact_phone, c.evidence,
		       c.status, c.submitted_at, c.reviewed_by, c.reviewed_at, c.review_note,
		       u.name, u.email, co.name
		FROM company_claims c
		LEFT JOIN users u ON u.id = c.user_id
		LEFT JOIN companies co ON co.id = c.company_id`
	var args []interface{}
	if status != "" {
		query += ` WHERE c.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY c.submitted_at DESC`

	rows, err := r.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.AdminClaim
	for rows.Next() {
		var c claim.AdminClaim
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.UserID, &c.ContactEmail, &c.ContactPhone,
			&c.Evidence, &c.Status, &c.SubmittedAt, &c.ReviewedBy, &c.ReviewedAt, &c.ReviewNote,
			&c.UserName, &c.UserEmail, &c.CompanyName); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (r *Repository) UpdateStatus(id int64, status string, reviewerID int64, reviewNote *string) error {
	query := `UPDATE company_claims
	          SET status = ?, reviewed_by = ?, reviewed_at = NOW(), review_note = ?
	          WHERE id = ?`
	return r.db.Exec(query, status, reviewerID, reviewNote, id).Error
}

func (r *Repository) GetNotifyInfo(id int64) (*claim.NotifyInfo, error) {
	var info claim.NotifyInfo
	query := `
		SELECT c.id, c.company_id, co.name, u.name, u.email, c.contact_email
		FROM company_claims c
		LEFT JOIN users u ON u.id = c.user_id
		LEFT JOIN companies co ON co.id = c.company_id
		WHERE c.id = ?`

	row := r.db.Raw(query, id).Row()
	if err := row.Scan(&info.ClaimID, &info.CompanyID, &info.CompanyName,
		&info.UserName, &info.UserEmail, &info.ContactEmail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// MarkCompanyVerified is idempotent; approving a second claim for the
// same company is a no-op.
func (r *Repository) MarkCompanyVerified(companyID int64) error {
	return r.db.Exec(`UPDATE companies SET verified = true WHERE id = ?`, companyID).Error
}
