package auth

import (
	"context"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var _ = ginkgo.Describe("Resolver", func() {
	var (
		db       *sqlx.DB
		resolver *Resolver
		ctx      context.Context
	)

	exec := func(query string, args ...interface{}) {
		_, err := db.Exec(query, args...)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	}

	ginkgo.BeforeEach(func() {
		gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		sqlDB, err := gormDB.DB()
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		// In-memory sqlite is per-connection, keep the pool at one.
		sqlDB.SetMaxOpenConns(1)

		db = sqlx.NewDb(sqlDB, "sqlite3")
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		resolver = NewResolver(db, logger)
		ctx = context.Background()

		exec(`CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			role_id INTEGER NOT NULL,
			company_id INTEGER
		)`)
		exec(`CREATE TABLE jobs (
			id INTEGER PRIMARY KEY,
			company_id INTEGER NOT NULL,
			posted_by INTEGER
		)`)
		exec(`CREATE TABLE applications (
			id INTEGER PRIMARY KEY,
			job_id INTEGER NOT NULL
		)`)
		exec(`CREATE TABLE company_claims (
			id INTEGER PRIMARY KEY,
			company_id INTEGER NOT NULL
		)`)

		// users: 1 admin, 2 member of company 10, 3 unaffiliated member,
		// 4 member of company 20
		exec(`INSERT INTO users (id, role_id, company_id) VALUES
			(1, 1, NULL), (2, 2, 10), (3, 2, NULL), (4, 2, 20)`)
		// job 100 belongs to company 10, posted by the unaffiliated user 3
		exec(`INSERT INTO jobs (id, company_id, posted_by) VALUES (100, 10, 3)`)
		exec(`INSERT INTO applications (id, job_id) VALUES (200, 100)`)
		exec(`INSERT INTO company_claims (id, company_id) VALUES (300, 10)`)
	})

	ginkgo.AfterEach(func() {
		gomega.Expect(db.Close()).To(gomega.Succeed())
	})

	ginkgo.Describe("Authorize", func() {
		ginkgo.Context("with no actor", func() {
			ginkgo.It("should deny as unauthenticated", func() {
				err := resolver.Authorize(ctx, nil, ResourceCompany, 10)
				gomega.Expect(err).To(gomega.Equal(ErrUnauthenticated))
			})
		})

		ginkgo.Context("when the actor is an admin", func() {
			ginkgo.It("should allow any company", func() {
				err := resolver.Authorize(ctx, AssertedContext{ID: 1, RoleID: RoleAdmin}, ResourceCompany, 10)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})

			ginkgo.It("should allow even identifiers that do not exist", func() {
				err := resolver.Authorize(ctx, AssertedContext{ID: 1, RoleID: RoleAdmin}, ResourceJob, 99999)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})

			ginkgo.It("should allow when the admin role is looked up from storage", func() {
				err := resolver.Authorize(ctx, UnresolvedContext{ID: 1}, ResourceClaim, 99999)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})
		})

		ginkgo.Context("with company resources", func() {
			ginkgo.It("should allow a member of the company", func() {
				companyID := int64(10)
				actor := AssertedContext{ID: 2, RoleID: RoleMember, CompanyID: &companyID}
				gomega.Expect(resolver.Authorize(ctx, actor, ResourceCompany, 10)).To(gomega.Succeed())
			})

			ginkgo.It("should deny a member of another company", func() {
				companyID := int64(20)
				actor := AssertedContext{ID: 4, RoleID: RoleMember, CompanyID: &companyID}
				err := resolver.Authorize(ctx, actor, ResourceCompany, 10)
				gomega.Expect(err).To(gomega.Equal(ErrForbidden))
			})

			ginkgo.It("should deny an actor without affiliation", func() {
				actor := AssertedContext{ID: 3, RoleID: RoleMember}
				err := resolver.Authorize(ctx, actor, ResourceCompany, 10)
				gomega.Expect(err).To(gomega.Equal(ErrForbidden))
			})
		})

		ginkgo.Context("with job resources", func() {
			ginkgo.It("should allow a member of the owning company", func() {
				err := resolver.Authorize(ctx, UnresolvedContext{ID: 2}, ResourceJob, 100)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})

			ginkgo.It("should allow the original poster regardless of affiliation", func() {
				err := resolver.Authorize(ctx, UnresolvedContext{ID: 3}, ResourceJob, 100)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})

			ginkgo.It("should deny an unrelated member", func() {
				err := resolver.Authorize(ctx, UnresolvedContext{ID: 4}, ResourceJob, 100)
				gomega.Expect(err).To(gomega.Equal(ErrForbidden))
			})

			ginkgo.It("should report a missing job as not found", func() {
				err := resolver.Authorize(ctx, UnresolvedContext{ID: 2}, ResourceJob, 99999)
				gomega.Expect(err).To(gomega.Equal(ErrResourceNotFound))
			})
		})

		ginkgo.Context("with application resources", func() {
			ginkgo.It("should reduce to the job's company", func() {
				gomega.Expect(resolver.Authorize(ctx, UnresolvedContext{ID: 2}, ResourceApplication, 200)).To(gomega.Succeed())

				err := resolver.Authorize(ctx, UnresolvedContext{ID: 4}, ResourceApplication, 200)
				gomega.Expect(err).To(gomega.Equal(ErrForbidden))
			})

			ginkgo.It("should report a missing application as not found", func() {
				err := resolver.Authorize(ctx, UnresolvedContext{ID: 2}, ResourceApplication, 99999)
				gomega.Expect(err).To(gomega.Equal(ErrResourceNotFound))
			})
		})

		ginkgo.Context("with claim resources", func() {
			ginkgo.It("should reduce to the claimed company", func() {
				gomega.Expect(resolver.Authorize(ctx, UnresolvedContext{ID: 2}, ResourceClaim, 300)).To(gomega.Succeed())

				err := resolver.Authorize(ctx, UnresolvedContext{ID: 4}, ResourceClaim, 300)
				gomega.Expect(err).To(gomega.Equal(ErrForbidden))
			})
		})

		ginkgo.Context("when the actor row does not exist", func() {
			ginkgo.It("should deny as unauthenticated", func() {
				err := resolver.Authorize(ctx, UnresolvedContext{ID: 99999}, ResourceCompany, 10)
				gomega.Expect(err).To(gomega.Equal(ErrUnauthenticated))
			})
		})
	})

	ginkgo.Describe("ResolveActor", func() {
		ginkgo.It("should trust asserted attributes without a lookup", func() {
			companyID := int64(555)
			resolved, err := resolver.ResolveActor(ctx, AssertedContext{ID: 9, RoleID: RoleMember, CompanyID: &companyID})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resolved.ID).To(gomega.Equal(int64(9)))
			gomega.Expect(*resolved.CompanyID).To(gomega.Equal(int64(555)))
		})

		ginkgo.It("should fetch role and affiliation for unresolved actors", func() {
			resolved, err := resolver.ResolveActor(ctx, UnresolvedContext{ID: 2})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resolved.RoleID).To(gomega.Equal(RoleMember))
			gomega.Expect(resolved.CompanyID).ToNot(gomega.BeNil())
			gomega.Expect(*resolved.CompanyID).To(gomega.Equal(int64(10)))
		})

		ginkgo.It("should leave affiliation nil when the column is null", func() {
			resolved, err := resolver.ResolveActor(ctx, UnresolvedContext{ID: 3})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resolved.CompanyID).To(gomega.BeNil())
		})
	})
})
