// Command seed fills the configured database with demo content.
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/yukikurage/qa-forum/internal/config"
	"github.com/yukikurage/qa-forum/internal/database"
	"github.com/yukikurage/qa-forum/internal/logging"
	"github.com/yukikurage/qa-forum/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of users to create")
	numQuestions := flag.Int("questions", defaults.Questions, "Number of questions to create")
	maxAnswers := flag.Int("max-answers", defaults.MaxAnswers, "Maximum answers per question")
	randomSeed := flag.Int64("seed", 0, "Random seed, 0 picks one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	slog.SetDefault(logging.New(cfg.LogFormat))

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	opts := defaults
	opts.Users = *numUsers
	opts.Questions = *numQuestions
	opts.MaxAnswers = *maxAnswers
	opts.Seed = *randomSeed

	if _, err := seed.NewSeeder(database.GetDB(), opts).Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	slog.Info("All seeded users share one password", "password", seed.DemoPassword)
}
