package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedPermissions is the default permission catalogue. Seeding is idempotent;
// rows that already exist are left untouched.
var seedPermissions = []struct {
	Name string
	Desc string
}{
	{"admin_access", "Full administrative access"},
	{"manage_users", "Manage user accounts and role assignments"},
	{"manage_roles", "Manage roles and their permissions"},
	{"manage_permissions", "Manage the permission catalogue"},
	{"read_users", "View user accounts"},
	{"create_users", "Create user accounts"},
	{"update_users", "Update user accounts"},
	{"delete_users", "Delete user accounts"},
	{"read_roles", "View roles"},
	{"create_roles", "Create roles"},
	{"update_roles", "Update roles"},
	{"delete_roles", "Delete roles"},
	{"read_permissions", "View permissions"},
	{"create_permissions", "Create permissions"},
	{"update_permissions", "Update permissions"},
	{"delete_permissions", "Delete permissions"},
	{"moderate_content", "Moderate user generated content"},
	{"view_reports", "View reports"},
	{"export_data", "Export data"},
}

var seedRoles = []struct {
	Name        string
	Desc        string
	Permissions []string
}{
	{
		Name: "admin",
		Desc: "Administrator with full access",
		Permissions: []string{
			"admin_access", "manage_users", "manage_roles", "manage_permissions",
			"read_users", "create_users", "update_users", "delete_users",
			"read_roles", "create_roles", "update_roles", "delete_roles",
			"read_permissions", "create_permissions", "update_permissions", "delete_permissions",
			"moderate_content", "view_reports", "export_data",
		},
	},
	{
		Name: "moderator",
		Desc: "Moderator with content and reporting access",
		Permissions: []string{
			"read_users", "moderate_content", "view_reports",
		},
	},
	{
		Name:        "user",
		Desc:        "Regular user",
		Permissions: []string{},
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default permission catalogue, roles and admin user",
	Long:  `Seed the permission catalogue, the admin/moderator/user roles and the bootstrap admin account.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_roles", "role_permissions", "users", "roles", "permissions"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		for _, p := range seedPermissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
			if err := row.Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
				fmt.Println("Seeded permission:", p.Name)
			}
		}

		for _, r := range seedRoles {
			var rid int64
			row := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row()
			if err := row.Scan(&rid); err != nil {
				if err := db.Exec("INSERT INTO roles (name, description, created_at) VALUES (?, ?, now())", r.Name, r.Desc).Error; err != nil {
					log.Fatalf("failed to insert role %s: %v", r.Name, err)
				}
				if err := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row().Scan(&rid); err != nil {
					log.Fatalf("role not found after insert %s: %v", r.Name, err)
				}
				fmt.Println("Seeded role:", r.Name)
			}

			for _, permName := range r.Permissions {
				var pid int64
				if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
					log.Fatalf("permission not found %s: %v", permName, err)
				}

				var exists int
				if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?", rid, pid).Row().Scan(&exists); err == nil {
					continue
				}

				if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id, created_at) VALUES (?, ?, now())", rid, pid).Error; err != nil {
					log.Fatalf("failed to grant permission %s to role %s: %v", permName, r.Name, err)
				}
			}
		}
		fmt.Println("Roles and permission grants seeded")

		seedAdminUser(db, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword, cfg.Security.BCryptCost)
	},
}

func seedAdminUser(db *gorm.DB, email, username, password string, bcryptCost int) {
	if password == "" {
		fmt.Println("No bootstrap admin password configured; skipping admin user")
		return
	}

	var uid int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&uid); err == nil {
		fmt.Println("Admin user already exists:", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	if err := db.Exec(
		"INSERT INTO users (email, username, password_hash, is_active, is_superuser, created_at, updated_at) VALUES (?, ?, ?, true, true, now(), now())",
		email, username, string(hash),
	).Error; err != nil {
		log.Fatalf("failed to insert admin user: %v", err)
	}

	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&uid); err != nil {
		log.Fatalf("failed to lookup admin user id: %v", err)
	}

	var rid int64
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", "admin").Row().Scan(&rid); err != nil {
		log.Fatalf("admin role not found: %v", err)
	}

	if err := db.Exec("INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, now())", uid, rid).Error; err != nil {
		log.Fatalf("failed to assign admin role: %v", err)
	}

	fmt.Println("Seeded admin user:", email)
}
