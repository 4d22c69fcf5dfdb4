package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/asset-management/internal"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an admin account",
	Long:  `Seed the database with an initial admin account for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"issues", "assignments", "assets", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		adminEmail := "admin@" + cfg.Security.AllowedEmailDomain
		adminName := "Seeded Admin"
		password := "Admin@pass1"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row().Scan(&exists); err == nil {
			fmt.Println("admin user already exists:", adminEmail)
			return
		}

		now := time.Now().UTC()
		err = db.Exec(
			"INSERT INTO users (id, name, email, password_hash, department, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			uuid.NewString(), adminName, adminEmail, string(hash), "CLOUD PLATFORM", internal.RoleAdmin, now, now,
		).Error
		if err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}

		fmt.Println("Seeded admin user:", adminEmail)
	},
}
