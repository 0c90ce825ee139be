package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"jobprep-backend/internal/coach"
	"jobprep-backend/internal/dashboard"
	"jobprep-backend/internal/exporter"
	"jobprep-backend/internal/interviews"
	"jobprep-backend/internal/llm"
	"jobprep-backend/internal/llm/gemini"
	"jobprep-backend/internal/llm/openai"
	"jobprep-backend/internal/resumes"
	"jobprep-backend/internal/shared/config"
	"jobprep-backend/internal/shared/server"
	"jobprep-backend/internal/shared/storage/db"
	"jobprep-backend/internal/shared/storage/object"
	localstore "jobprep-backend/internal/shared/storage/object/local"
	s3store "jobprep-backend/internal/shared/storage/object/s3"
	"jobprep-backend/internal/shared/telemetry"
	"jobprep-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    *llm.Gateway

	UsersService      *users.Service
	ResumesService    *resumes.Service
	InterviewsService *interviews.Service
	DashboardService  *dashboard.Service
	ExportService     *exporter.Service
}

// Build connects every dependency named by cfg and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	client, err := buildLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return BuildWithClient(ctx, cfg, client)
}

// BuildWithClient is Build with a caller-supplied provider client.
func BuildWithClient(ctx context.Context, cfg config.Config, client llm.Client) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM: llm.NewGateway(client, llm.Options{
			Provider:    cfg.LLMProvider,
			Model:       cfg.LLMModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			Timeout:     cfg.LLMTimeout,
		}),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		ResumeHandler:    resumes.NewHandler(app.ResumesService),
		InterviewHandler: interviews.NewHandler(app.InterviewsService),
		DashboardHandler: dashboard.NewHandler(app.DashboardService),
		ExportHandler:    exporter.NewHandler(app.ExportService),
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_fallback", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.Shared(ctx, cfg.DatabaseURL, db.OptionsFor(db.ProfileLambda, cfg.DBPool))
	} else {
		sqlDB, err = db.Open(ctx, cfg.DatabaseURL, db.OptionsFor(db.ProfileServer, cfg.DBPool))
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_fallback", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ExportStoreType {
	case config.StoreS3:
		return s3store.New(ctx, s3store.Options{
			Region:   cfg.AWSRegion,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			KMSKeyID: cfg.SSEKMSKeyID,
		})
	default:
		return localstore.New(cfg.ExportDir), nil
	}
}

func buildLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func buildServices(app *App) {
	var (
		userRepo      users.Repo
		resumeRepo    resumes.Repo
		interviewRepo interviews.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		interviewRepo = &interviews.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		interviewRepo = interviews.NewMemoryRepo()
	}

	coachSvc := coach.NewService(app.LLM)
	userSvc := users.NewService(userRepo)

	app.UsersService = userSvc
	app.ResumesService = &resumes.Service{
		Repo:    resumeRepo,
		Users:   userSvc,
		Coach:   coachSvc,
		Uploads: app.Store,
	}
	app.InterviewsService = &interviews.Service{
		Repo:  interviewRepo,
		Users: userSvc,
		Coach: coachSvc,
	}
	app.DashboardService = &dashboard.Service{
		Users:      userSvc,
		Resumes:    resumeRepo,
		Interviews: interviewRepo,
	}
	app.ExportService = &exporter.Service{
		Users:      userSvc,
		Resumes:    resumeRepo,
		Interviews: interviewRepo,
		Store:      app.Store,
	}
}
