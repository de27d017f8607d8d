package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// ResourceKind names the entity classes ownership checks run against.
type ResourceKind string

const (
	ResourceCompany     ResourceKind = "company"
	ResourceJob         ResourceKind = "job"
	ResourceApplication ResourceKind = "application"
	ResourceClaim       ResourceKind = "claim"
)

// ResolvedActor is an actor whose role and affiliation are known, either
// asserted by the session token or fetched from storage.
type ResolvedActor struct {
	ID        int64
	RoleID    int64
	CompanyID *int64
}

func (a ResolvedActor) IsAdmin() bool {
	return a.RoleID == RoleAdmin
}

// resourceOwnership is what a target resource reduces to for the
// company-affiliation comparison. PostedBy is set for jobs only.
type resourceOwnership struct {
	CompanyID int64
	PostedBy  *int64
}

// Resolver decides whether an actor may act on a job, company,
// application or claim. Every decision reduces to a company identifier
// comparison, except the admin bypass and job authorship.
type Resolver struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewResolver(db *sqlx.DB, logger *slog.Logger) *Resolver {
	return &Resolver{db: db, logger: logger}
}

// ResolveActor fills in role and affiliation. Asserted contexts are
// trusted as-is; unresolved ones cost one lookup.
func (r *Resolver) ResolveActor(ctx context.Context, actor ActorContext) (*ResolvedActor, error) {
	switch a := actor.(type) {
	case AssertedContext:
		return &ResolvedActor{ID: a.ID, RoleID: a.RoleID, CompanyID: a.CompanyID}, nil
	case UnresolvedContext:
		var row struct {
			RoleID    int64         `db:"role_id"`
			CompanyID sql.NullInt64 `db:"company_id"`
		}
		query := r.db.Rebind("SELECT role_id, company_id FROM users WHERE id = ?")
		if err := r.db.GetContext(ctx, &row, query, a.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrUnauthenticated
			}
			return nil, err
		}
		resolved := &ResolvedActor{ID: a.ID, RoleID: row.RoleID}
		if row.CompanyID.Valid {
			companyID := row.CompanyID.Int64
			resolved.CompanyID = &companyID
		}
		return resolved, nil
	default:
		return nil, fmt.Errorf("unknown actor context %T", actor)
	}
}

// Authorize grants or denies an actor's access to one resource.
//
// Denials are distinguishable: ErrUnauthenticated for a missing actor,
// ErrResourceNotFound when the target row does not exist, ErrForbidden
// otherwise. Admins bypass the resource lookup entirely, so an admin is
// allowed even for identifiers that do not exist.
func (r *Resolver) Authorize(ctx context.Context, actor ActorContext, kind ResourceKind, resourceID int64) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	resolved, err := r.ResolveActor(ctx, actor)
	if err != nil {
		return err
	}

	if resolved.IsAdmin() {
		return nil
	}

	ownership, err := r.resolveResource(ctx, kind, resourceID)
	if err != nil {
		return err
	}

	// An actor without affiliation never passes the company match.
	if resolved.CompanyID != nil && *resolved.CompanyID == ownership.CompanyID {
		return nil
	}

	// Jobs are additionally owned by their original poster, independent
	// of company affiliation.
	if kind == ResourceJob && ownership.PostedBy != nil && *ownership.PostedBy == resolved.ID {
		return nil
	}

	r.logger.Warn("access denied",
		"actor_id", resolved.ID,
		"resource_kind", kind,
		"resource_id", resourceID,
		"resource_company_id", ownership.CompanyID)
	return ErrForbidden
}

func (r *Resolver) resolveResource(ctx context.Context, kind ResourceKind, resourceID int64) (*resourceOwnership, error) {
	switch kind {
	case ResourceCompany:
		return &resourceOwnership{CompanyID: resourceID}, nil

	case ResourceJob:
		var row struct {
			CompanyID int64         `db:"company_id"`
			PostedBy  sql.NullInt64 `db:"posted_by"`
		}
		query := r.db.Rebind("SELECT company_id, posted_by FROM jobs WHERE id = ?")
		if err := r.db.GetContext(ctx, &row, query, resourceID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrResourceNotFound
			}
			return nil, err
		}
		ownership := &resourceOwnership{CompanyID: row.CompanyID}
		if row.PostedBy.Valid {
			postedBy := row.PostedBy.Int64
			ownership.PostedBy = &postedBy
		}
		return ownership, nil

	case ResourceApplication:
		var companyID int64
		query := r.db.Rebind(`
			SELECT j.company_id
			FROM applications a
			JOIN jobs j ON j.id = a.job_id
			WHERE a.id = ?`)
		if err := r.db.GetContext(ctx, &companyID, query, resourceID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrResourceNotFound
			}
			return nil, err
		}
		return &resourceOwnership{CompanyID: companyID}, nil

	case ResourceClaim:
		var companyID int64
		query := r.db.Rebind("SELECT company_id FROM company_claims WHERE id = ?")
		if err := r.db.GetContext(ctx, &companyID, query, resourceID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrResourceNotFound
			}
			return nil, err
		}
		return &resourceOwnership{CompanyID: companyID}, nil

	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}
