// Package bootstrap assembles the application's dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasadasw/examportal/internal/app/controllers"
	"github.com/prasadasw/examportal/internal/app/migrations"
	"github.com/prasadasw/examportal/internal/app/repositories"
	"github.com/prasadasw/examportal/internal/app/routes"
	"github.com/prasadasw/examportal/internal/app/services"
	"github.com/prasadasw/examportal/internal/config"
	"github.com/prasadasw/examportal/internal/db"
	"github.com/prasadasw/examportal/internal/middleware"
	"github.com/prasadasw/examportal/internal/pkg/auth"
	"github.com/prasadasw/examportal/internal/pkg/filestorage"
	"github.com/prasadasw/examportal/internal/pkg/helpers"
	"github.com/prasadasw/examportal/internal/pkg/logger"
	"github.com/prasadasw/examportal/internal/seed"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Repos          *repositories.Repositories
	JWTService     *auth.JWTService
	FileStorage    *filestorage.LocalStorage
	AuthMiddleware *middleware.AuthMiddleware
	Controllers    routes.Controllers
}

// LoadConfigAndSetupLogger loads configuration and configures the global
// logger from it.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	cfg, err := config.LoadConfig(filepath.Join("configs", "config.yaml"))
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	logger.Info().Str("level", cfg.Logging.Level).Str("format", cfg.Logging.Format).Msg("Logger configured")

	return cfg, nil
}

// SetupDatabase connects to Postgres, applies migrations and seeds default
// data.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	pool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationsDir := filepath.Join("internal", "app", "migrations")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		pool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s", migrationsDir)
	}
	if err := migrations.NewMigrator(pool).ApplyDirectory(context.Background(), migrationsDir); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.EnsureDefaultAdmin(context.Background(), repositories.NewAdminRepository(pool)); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, pool *pgxpool.Pool) (*Dependencies, error) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	repos := repositories.NewRepositories(pool)

	authService := services.NewAuthService(repos.StudentRepository, repos.AdminRepository, jwtService)
	programService := services.NewProgramService(repos.ProgramRepository)
	testService := services.NewTestService(repos.TestRepository, repos.ProgramRepository)
	questionService := services.NewQuestionService(repos.QuestionRepository, repos.TestRepository)
	enrollmentService := services.NewEnrollmentService(repos.EnrollmentRepository, repos.TestRepository)
	submissionService := services.NewSubmissionService(
		repos.SubmissionRepository, repos.EnrollmentRepository,
		repos.TestRepository, repos.QuestionRepository, repos.AnswerRepository)
	reviewService := services.NewReviewService(repos.SubmissionRepository, repos.AnswerRepository)
	enquiryService := services.NewEnquiryService(repos.EnquiryRepository)

	return &Dependencies{
		Repos:          repos,
		JWTService:     jwtService,
		FileStorage:    storage,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
		Controllers: routes.Controllers{
			Auth:       controllers.NewAuthController(authService),
			Program:    controllers.NewProgramController(programService),
			Test:       controllers.NewTestController(testService),
			Question:   controllers.NewQuestionController(questionService, storage),
			Enrollment: controllers.NewEnrollmentController(enrollmentService),
			Submission: controllers.NewSubmissionController(submissionService),
			Review:     controllers.NewReviewController(reviewService),
			Enquiry:    controllers.NewEnquiryController(enquiryService),
		},
	}, nil
}

// SetupRouter builds the gin engine with all routes registered.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	routes.Setup(engine, deps.Controllers, deps.AuthMiddleware)
	return engine
}
