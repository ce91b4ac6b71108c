// Command admin provides role management utilities for Pulse.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"pulse/internal/config"
	"pulse/internal/database"
	"pulse/internal/models"
	"pulse/internal/repository"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go promote <user_id>   - Promote user to admin")
		fmt.Println("  go run ./cmd/admin/main.go demote <user_id>    - Demote user from admin")
		fmt.Println("  go run ./cmd/admin/main.go list-admins         - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "promote":
		userID := parseUserID()
		if err := users.GrantRole(ctx, userID, models.RoleAdmin); err != nil {
			log.Fatalf("Failed to promote user %d: %v", userID, err)
		}
		fmt.Printf("User %d promoted to admin\n", userID)

	case "demote":
		userID := parseUserID()
		err := db.Exec(
			`DELETE FROM user_roles WHERE user_id = ? AND role_id IN (SELECT id FROM roles WHERE name = ?)`,
			userID, models.RoleAdmin,
		).Error
		if err != nil {
			log.Fatalf("Failed to demote user %d: %v", userID, err)
		}
		fmt.Printf("User %d demoted from admin\n", userID)

	case "list-admins":
		var admins []models.User
		err := db.
			Joins("JOIN user_roles ON user_roles.user_id = users.id").
			Joins("JOIN roles ON roles.id = user_roles.role_id").
			Where("roles.name = ?", models.RoleAdmin).
			Find(&admins).Error
		if err != nil {
			log.Fatalf("Failed to list admins: %v", err)
		}
		if len(admins) == 0 {
			fmt.Println("No admins found")
			return
		}
		for _, u := range admins {
			fmt.Printf("%d\t%s\t%s\n", uint(u.ID), u.Username, u.Email)
		}

	default:
		log.Fatalf("Unknown command: %s", os.Args[1])
	}
}

func parseUserID() uint {
	if len(os.Args) < 3 {
		log.Fatal("Missing user_id argument")
	}
	id, err := strconv.ParseUint(os.Args[2], 10, 32)
	if err != nil {
		log.Fatalf("Invalid user_id %q: %v", os.Args[2], err)
	}
	return uint(id)
}
