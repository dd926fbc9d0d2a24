// Command admin runs maintenance tasks against the forum database.
package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/yukikurage/qa-forum/internal/config"
	"github.com/yukikurage/qa-forum/internal/database"
	"github.com/yukikurage/qa-forum/internal/logging"
	"github.com/yukikurage/qa-forum/internal/repository"
	"github.com/yukikurage/qa-forum/internal/services"
	"github.com/yukikurage/qa-forum/internal/storage"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  admin delete-user <user_id>   - Delete a user, their content and avatar")
	fmt.Println("  admin list-users              - List all users")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	slog.SetDefault(logging.New(cfg.LogFormat))

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	profiles := services.NewProfileService(
		repository.NewUserRepository(database.GetDB()),
		storage.NewAvatarStorage(cfg.MediaRoot),
	)

	switch command := os.Args[1]; command {
	case "delete-user":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		deleteUser(profiles, os.Args[2])

	case "list-users":
		listUsers(profiles)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}

func deleteUser(profiles *services.ProfileService, arg string) {
	userID, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		fmt.Printf("Invalid user ID: %s\n", arg)
		os.Exit(1)
	}

	if err := profiles.DeleteUser(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fmt.Printf("User with ID %d not found\n", userID)
			os.Exit(1)
		}
		log.Fatalf("Failed to delete user: %v", err)
	}

	fmt.Printf("Deleted user %d\n", userID)
}

func listUsers(profiles *services.ProfileService) {
	users, err := profiles.ListUsers()
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return
	}

	fmt.Printf("%-6s %-20s %s\n", "ID", "USERNAME", "EMAIL")
	for _, user := range users {
		fmt.Printf("%-6d %-20s %s\n", user.ID, user.Username, user.Email)
	}
}
