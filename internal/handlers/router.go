package handlers

import (
	"html/template"
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/qa-forum/internal/constants"
	apperrors "github.com/yukikurage/qa-forum/internal/errors"
	"github.com/yukikurage/qa-forum/internal/middleware"
	"github.com/yukikurage/qa-forum/internal/permissions"
	"github.com/yukikurage/qa-forum/internal/repository"
	"github.com/yukikurage/qa-forum/internal/services"
	"github.com/yukikurage/qa-forum/internal/storage"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	DB           *gorm.DB
	SessionStore sessions.Store
	Avatars      *storage.AvatarStorage
	Templates    *template.Template
	Logger       *slog.Logger
	BcryptCost   int
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Repositories
	questionRepo := repository.NewQuestionRepository(deps.DB)
	answerRepo := repository.NewAnswerRepository(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)
	guard := permissions.NewGuard(questionRepo, answerRepo, userRepo)

	// Services
	authService := services.NewAuthService(userRepo)
	if deps.BcryptCost > 0 {
		authService.WithBcryptCost(deps.BcryptCost)
	}
	questionService := services.NewQuestionService(questionRepo, answerRepo)
	answerService := services.NewAnswerService(answerRepo, questionRepo, guard)
	profileService := services.NewProfileService(userRepo, deps.Avatars)

	// Handlers
	authHandler := NewAuthHandler(authService)
	questionHandler := NewQuestionHandler(questionService)
	answerHandler := NewAnswerHandler(answerService, questionService)
	userHandler := NewUserHandler(profileService, authService, questionService, answerService)
	mediaHandler := NewMediaHandler(deps.Avatars)
	healthHandler := NewHealthHandler(deps.DB)

	r := gin.New()
	r.MaxMultipartMemory = constants.MaxAvatarUploadSize
	r.SetHTMLTemplate(deps.Templates)
	r.Use(
		middleware.RequestLogger(logger),
		gin.Recovery(),
		middleware.Metrics(),
	)

	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/media/*path", mediaHandler.Serve)

	site := r.Group("/")
	site.Use(
		sessions.Sessions(constants.SessionCookieName, deps.SessionStore),
		middleware.LoadCurrentUser(userRepo),
	)
	{
		site.GET("/", questionHandler.Index)
		site.GET("/search", questionHandler.Search)

		site.GET("/register", authHandler.RegisterPage)
		site.POST("/register", authHandler.Register)
		site.GET("/login", authHandler.LoginPage)
		site.POST("/login", authHandler.Login)
		site.POST("/logout", authHandler.Logout)

		requireAuth := middleware.RequireAuth()
		ownsQuestion := middleware.RequireOwner(guard, permissions.KindQuestion, "id")
		ownsAnswer := middleware.RequireOwner(guard, permissions.KindAnswer, "answer_id")
		ownsProfile := middleware.RequireOwner(guard, permissions.KindProfile, "id")

		questions := site.Group("/questions")
		{
			questions.GET("/ask", requireAuth, questionHandler.AskPage)
			questions.POST("/ask", requireAuth, questionHandler.Ask)
			questions.GET("/tagged/:tag", questionHandler.Tagged)

			questions.GET("/:id", questionHandler.Show)
			questions.GET("/:id/edit", ownsQuestion, questionHandler.EditPage)
			questions.POST("/:id/edit", ownsQuestion, questionHandler.Edit)
			questions.GET("/:id/delete", ownsQuestion, questionHandler.DeletePage)
			questions.POST("/:id/delete", ownsQuestion, questionHandler.Delete)

			questions.GET("/:id/answer", answerHandler.CreatePage)
			questions.POST("/:id/answer", requireAuth, answerHandler.Create)
			questions.GET("/:id/:answer_id/edit", ownsAnswer, answerHandler.EditPage)
			questions.POST("/:id/:answer_id/edit", ownsAnswer, answerHandler.Edit)
			questions.GET("/:id/:answer_id/delete", ownsAnswer, answerHandler.DeletePage)
			questions.POST("/:id/:answer_id/delete", ownsAnswer, answerHandler.Delete)
			questions.POST("/:id/:answer_id/accept", requireAuth, answerHandler.Accept)
		}

		users := site.Group("/users")
		{
			users.GET("/:id", userHandler.Show)
			users.GET("/:id/edit", ownsProfile, userHandler.EditPage)
			users.POST("/:id/edit", ownsProfile, userHandler.Edit)
			users.GET("/:id/settings", ownsProfile, userHandler.SettingsPage)
			users.POST("/:id/settings", ownsProfile, userHandler.Settings)
		}
	}

	r.NoRoute(apperrors.NotFound)

	return r
}
