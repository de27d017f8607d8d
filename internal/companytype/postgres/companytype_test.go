package companytype

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCompanyTypeRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CompanyTypeRepository Suite")
}

var _ = Describe("CompanyTypeRepository", func() {
	var (
		db   *gorm.DB
		repo *Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		// In-memory sqlite is per-connection, keep the pool at one.
		sqlDB.SetMaxOpenConns(1)

		err = db.Exec(`CREATE TABLE company_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`).Error
		Expect(err).NotTo(HaveOccurred())

		repo = NewRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should insert a type and return its id", func() {
			id, err := repo.Create("Technology")

			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))
		})

		It("should reject a duplicate name", func() {
			_, err := repo.Create("Technology")
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Create("Technology")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetAll", func() {
		It("should return types ordered by id", func() {
			_, err := repo.Create("Technology")
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.Create("Finance")
			Expect(err).NotTo(HaveOccurred())

			types, err := repo.GetAll()

			Expect(err).NotTo(HaveOccurred())
			Expect(types).To(HaveLen(2))
			Expect(types[0].Name).To(Equal("Technology"))
			Expect(types[1].Name).To(Equal("Finance"))
		})

		It("should return nothing on an empty table", func() {
			types, err := repo.GetAll()

			Expect(err).NotTo(HaveOccurred())
			Expect(types).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		It("should remove a type", func() {
			id, err := repo.Create("Technology")
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.Delete(id)).NotTo(HaveOccurred())

			types, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(types).To(BeEmpty())
		})
	})
})
