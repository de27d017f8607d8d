package review

import (
	"github.com/ulasan/company-review/internal/review"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListRecent(limit int) ([]review.FeedReview, error) {
	query := `
		SELECT r.id, r.company_id, c.name, r.rating, r.comment, u.name, r.created_at
		FROM reviews r
		JOIN companies c ON c.id = r.company_id
		JOIN users u ON u.id = r.user_id
		ORDER BY r.id DESC
		LIMIT ?`

	rows, err := r.db.Raw(query, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []review.FeedReview
	for rows.Next() {
		var rv review.FeedReview
		if err := rows.Scan(&rv.ID, &rv.CompanyID, &rv.CompanyName, &rv.Rating, &rv.Comment, &rv.UserName, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *Repository) ListByCompany(companyID int64) ([]review.CompanyReview, error) {
	query := `
		SELECT r.id, r.rating, r.comment, r.user_id, u.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.company_id = ?
		ORDER BY r.id DESC`

	rows, err := r.db.Raw(query, companyID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []review.CompanyReview
	for rows.Next() {
		var rv review.CompanyReview
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.Comment, &rv.UserID, &rv.UserName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *Repository) ListByUser(userID int64) ([]review.MyReview, error) {
	query := `
		SELECT r.id, r.company_id, c.name, c.address, r.rating, r.comment
		FROM reviews r
		JOIN companies c ON c.id = r.company_id
		WHERE r.user_id = ?
		ORDER BY r.id DESC`

	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []review.MyReview
	for rows.Next() {
		var rv review.MyReview
		if err := rows.Scan(&rv.ID, &rv.CompanyID, &rv.CompanyName, &rv.CompanyAddress, &rv.Rating, &rv.Comment); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *Repository) Create(userID int64, dto review.CreateReviewDTO) (int64, error) {
	var id int64
	query := `INSERT INTO reviews (user_id, company_id, rating, comment, created_at)
	          VALUES (?, ?, ?, ?, NOW()) RETURNING id`
	row := r.db.Raw(query, userID, dto.CompanyID, dto.Rating, dto.Comment).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) UpdateOwned(id, userID int64, dto review.UpdateReviewDTO) (bool, error) {
	result := r.db.Exec(`UPDATE reviews SET rating = ?, comment = ? WHERE id = ? AND user_id = ?`,
		dto.Rating, dto.Comment, id, userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteOwned(id, userID int64, isAdmin bool) (bool, error) {
	result := r.db.Exec(`DELETE FROM reviews WHERE id = ? AND (user_id = ? OR ?)`, id, userID, isAdmin)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) AdminList(includeApproved bool) ([]review.AdminReview, error) {
	approvedCol := ""
	if includeApproved {
		approvedCol = ", r.approved"
	}
	query := `
		SELECT r.id, r.user_id, u.name, r.company_id, c.name, r.rating, r.comment` + approvedCol + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN companies c ON c.id = r.company_id
		ORDER BY r.id DESC`

	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []review.AdminReview
	for rows.Next() {
		var rv review.AdminReview
		if includeApproved {
			var approved bool
			if err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.CompanyID, &rv.CompanyName,
				&rv.Rating, &rv.Comment, &approved); err != nil {
				return nil, err
			}
			rv.Approved = &approved
		} else {
			if err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.CompanyID, &rv.CompanyName,
				&rv.Rating, &rv.Comment); err != nil {
				return nil, err
			}
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *Repository) AdminUpdate(id int64, dto review.UpdateReviewDTO) error {
	return r.db.Exec(`UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`,
		dto.Rating, dto.Comment, id).Error
}

func (r *Repository) AdminDelete(id int64) error {
	return r.db.Exec(`DELETE FROM reviews WHERE id = ?`, id).Error
}

func (r *Repository) SetApproval(id int64, approved bool) error {
	return r.db.Exec(`UPDATE reviews SET approved = ? WHERE id = ?`, approved, id).Error
}
