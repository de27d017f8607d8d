package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"application_files", "applications", "company_claims", "reviews", "jobs", "companies", "company_types", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		roles := []struct {
			ID   int64
			Name string
		}{
			{1, "Admin"},
			{2, "Member"},
		}
		for _, r := range roles {
			var exists int
			if err := db.Raw("SELECT 1 FROM roles WHERE id = ?", r.ID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO roles (id, name) VALUES (?, ?)", r.ID, r.Name).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", r.Name, err)
			}
		}
		fmt.Println("Seeded roles")

		types := []string{"Technology", "Finance", "Healthcare", "Retail", "Manufacturing"}
		for _, name := range types {
			var exists int
			if err := db.Raw("SELECT 1 FROM company_types WHERE name = ?", name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO company_types (name) VALUES (?)", name).Error; err != nil {
				log.Fatalf("failed to insert company type %s: %v", name, err)
			}
		}
		fmt.Println("Seeded company types")

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		adminEmail := "admin@mail.com"
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row().Scan(&exists); err != nil {
			if err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role_id, created_at, updated_at) VALUES (?, ?, ?, 1, now(), now())",
				"Admin", adminEmail, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		var typeID int64
		if err := db.Raw("SELECT id FROM company_types WHERE name = ?", "Technology").Row().Scan(&typeID); err != nil {
			log.Fatalf("failed to lookup company type: %v", err)
		}

		companyName := "Acme Software"
		var companyID int64
		if err := db.Raw("SELECT id FROM companies WHERE name = ?", companyName).Row().Scan(&companyID); err != nil {
			row := db.Raw(
				"INSERT INTO companies (name, address, type_id, created_at, updated_at) VALUES (?, ?, ?, now(), now()) RETURNING id",
				companyName, "Jl. Sudirman No. 1, Jakarta", typeID).Row()
			if err := row.Scan(&companyID); err != nil {
				log.Fatalf("failed to insert sample company: %v", err)
			}
			fmt.Println("Seeded sample company:", companyName)
		}

		memberEmail := "member@mail.com"
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", memberEmail).Row().Scan(&exists); err != nil {
			if err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role_id, company_id, created_at, updated_at) VALUES (?, ?, ?, 2, ?, now(), now())",
				"Member", memberEmail, string(hash), companyID).Error; err != nil {
				log.Fatalf("failed to insert member user: %v", err)
			}
			fmt.Println("Seeded member user:", memberEmail)
		}

		fmt.Println("Seeding complete")
	},
}
