package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-insight/internal/analyses"
	"resume-insight/internal/analysis"
	googleauth "resume-insight/internal/auth"
	"resume-insight/internal/documents"
	"resume-insight/internal/nlp"
	"resume-insight/internal/queue"
	"resume-insight/internal/shared/config"
	"resume-insight/internal/shared/server"
	"resume-insight/internal/shared/storage/db"
	"resume-insight/internal/shared/storage/object"
	localstore "resume-insight/internal/shared/storage/object/local"
	s3store "resume-insight/internal/shared/storage/object/s3"
)

// App holds the shared dependency graph used by the API and the worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	NLP    *nlp.Client

	DocumentsRepo documents.DocumentsRepo
	AnalysesRepo  analyses.Repo

	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	GoogleAuth       *googleauth.GoogleService
}

// Build constructs the full application graph from config.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.NLPBaseURL) == "" {
		cfg.NLPBaseURL = "http://localhost:5001"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	nlpClient, err := nlp.Shared(cfg.NLPBaseURL, cfg.NLPTimeout)
	if err != nil {
		return nil, fmt.Errorf("nlp client: %w", err)
	}

	engine := analysis.NewAnalyzer(nlpClient, nlpClient)
	if len(cfg.SkillVocabulary) > 0 {
		engine.Vocabulary = analysis.MergeVocabulary(engine.Vocabulary, cfg.SkillVocabulary)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		NLP:    nlpClient,
	}

	if sqlDB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: sqlDB}
		app.AnalysesRepo = &analyses.PGRepo{DB: sqlDB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.AnalysesRepo = analyses.NewMemoryRepo()
	}

	app.DocumentsService = &documents.Service{Store: store, Repo: app.DocumentsRepo}
	app.AnalysesService = &analyses.Service{
		Repo:   app.AnalysesRepo,
		Docs:   app.DocumentsRepo,
		Store:  store,
		Engine: engine,
		Queue:  queueClient,
	}
	if cfg.GoogleClientID != "" {
		app.GoogleAuth = googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		DocumentHandler: documents.NewHandler(app.DocumentsService),
		AnalysisHandler: analyses.NewHandler(app.AnalysesService),
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
