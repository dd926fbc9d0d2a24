// Package seed fills a database with demo users, questions and answers.
// It is meant for development only.
package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/permissions"
	"github.com/yukikurage/qa-forum/internal/repository"
	"github.com/yukikurage/qa-forum/internal/services"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

const maxUsernameAttempts = 5

var demoTags = []string{
	"go", "gorm", "gin", "sql", "postgres", "mysql", "sqlite", "redis",
	"docker", "testing", "http", "templates", "sessions", "css", "javascript",
}

// Options controls how much data is generated.
type Options struct {
	Users              int
	Questions          int
	MaxAnswers         int
	MaxTagsPerQuestion int
	// Seed makes the run reproducible when non-zero.
	Seed int64
	// BcryptCost overrides the password hashing cost, 0 keeps the default.
	BcryptCost int
}

// DefaultOptions returns a small but lively forum.
func DefaultOptions() Options {
	return Options{
		Users:              10,
		Questions:          40,
		MaxAnswers:         4,
		MaxTagsPerQuestion: 3,
	}
}

// Result summarizes a seeding run.
type Result struct {
	Users     []*models.User
	Questions []*models.Question
	Answers   int
	Accepted  int
}

// Seeder creates demo content through the same services the web app uses.
type Seeder struct {
	auth      *services.AuthService
	questions *services.QuestionService
	answers   *services.AnswerService
	faker     *gofakeit.Faker
	rnd       *rand.Rand
	opts      Options
	logger    *slog.Logger
}

// NewSeeder builds a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	userRepo := repository.NewUserRepository(db)
	guard := permissions.NewGuard(questionRepo, answerRepo, userRepo)

	auth := services.NewAuthService(userRepo)
	if opts.BcryptCost > 0 {
		auth.WithBcryptCost(opts.BcryptCost)
	}

	return &Seeder{
		auth:      auth,
		questions: services.NewQuestionService(questionRepo, answerRepo),
		answers:   services.NewAnswerService(answerRepo, questionRepo, guard),
		faker:     gofakeit.New(opts.Seed),
		rnd:       rand.New(rand.NewSource(opts.Seed)),
		opts:      opts,
		logger:    slog.Default(),
	}
}

// Run creates the configured number of users and questions, answers them and
// accepts an answer on roughly a third of the questions.
func (s *Seeder) Run() (*Result, error) {
	result := &Result{}

	for i := 0; i < s.opts.Users; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return result, err
		}
		result.Users = append(result.Users, user)
	}
	if len(result.Users) == 0 {
		return result, nil
	}

	for i := 0; i < s.opts.Questions; i++ {
		owner := s.pick(result.Users)
		question, err := s.CreateQuestion(owner)
		if err != nil {
			return result, err
		}
		result.Questions = append(result.Questions, question)

		var answers []*models.Answer
		for n := s.rnd.Intn(s.opts.MaxAnswers + 1); n > 0; n-- {
			answer, err := s.CreateAnswer(s.pick(result.Users), question)
			if err != nil {
				return result, err
			}
			answers = append(answers, answer)
		}
		result.Answers += len(answers)

		if len(answers) > 0 && s.rnd.Intn(3) == 0 {
			chosen := answers[s.rnd.Intn(len(answers))]
			applied, err := s.answers.Accept(permissions.Actor{ID: owner.ID}, question.ID, chosen.ID)
			if err != nil {
				return result, fmt.Errorf("failed to accept answer: %w", err)
			}
			if applied {
				result.Accepted++
			}
		}
	}

	s.logger.Info("Seeding finished",
		"users", len(result.Users),
		"questions", len(result.Questions),
		"answers", result.Answers,
		"accepted", result.Accepted,
	)
	return result, nil
}

// CreateUser registers a user with a fake identity and DemoPassword.
func (s *Seeder) CreateUser() (*models.User, error) {
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		user, err := s.auth.Register(services.RegisterInput{
			Username: s.username(),
			Email:    s.faker.Email(),
			Password: DemoPassword,
		})
		if errors.Is(err, services.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}
	return nil, fmt.Errorf("failed to create user: %w", services.ErrUsernameTaken)
}

// CreateQuestion asks a fake question with a few tags from the demo set.
func (s *Seeder) CreateQuestion(owner *models.User) (*models.Question, error) {
	question, err := s.questions.Ask(owner.ID, services.QuestionInput{
		Title: strings.TrimSuffix(s.faker.Question(), "?") + "?",
		Text:  s.faker.Paragraph(2, 4, 12, "\n\n"),
		Tags:  s.tags(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// CreateAnswer posts a fake answer by owner.
func (s *Seeder) CreateAnswer(owner *models.User, question *models.Question) (*models.Answer, error) {
	answer, err := s.answers.Create(owner.ID, question.ID, s.faker.Paragraph(1, 3, 10, "\n\n"))
	if err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}
	return answer, nil
}

func (s *Seeder) username() string {
	name := strings.ToLower(s.faker.Username())
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || strings.ContainsRune("._-", r) {
			return r
		}
		return -1
	}, name)
	return fmt.Sprintf("%s%d", name, s.faker.Number(100, 999))
}

func (s *Seeder) tags() []string {
	if s.opts.MaxTagsPerQuestion <= 0 {
		return nil
	}
	n := s.rnd.Intn(s.opts.MaxTagsPerQuestion + 1)
	perm := s.rnd.Perm(len(demoTags))
	tags := make([]string, 0, n)
	for _, i := range perm[:n] {
		tags = append(tags, demoTags[i])
	}
	return tags
}

func (s *Seeder) pick(users []*models.User) *models.User {
	return users[s.rnd.Intn(len(users))]
}
