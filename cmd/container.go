package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/seaforth/crewdesk/crewing/candidate/candidateapi"
	"github.com/seaforth/crewdesk/crewing/candidate/candidateinfra"
	"github.com/seaforth/crewdesk/crewing/candidate/candidatesrv"
	"github.com/seaforth/crewdesk/crewing/dashboard/dashboardapi"
	"github.com/seaforth/crewdesk/crewing/dashboard/dashboardsrv"
	"github.com/seaforth/crewdesk/crewing/document"
	"github.com/seaforth/crewdesk/crewing/document/documentapi"
	"github.com/seaforth/crewdesk/crewing/document/documentinfra"
	"github.com/seaforth/crewdesk/crewing/document/documentsrv"
	"github.com/seaforth/crewdesk/crewing/document/worker"
	"github.com/seaforth/crewdesk/crewing/requirement/requirementapi"
	"github.com/seaforth/crewdesk/crewing/requirement/requirementinfra"
	"github.com/seaforth/crewdesk/crewing/requirement/requirementsrv"
	"github.com/seaforth/crewdesk/internal/ai/cvparser"
	"github.com/seaforth/crewdesk/internal/ai/embeddings"
	"github.com/seaforth/crewdesk/pkg/fsx"
	"github.com/seaforth/crewdesk/pkg/fsx/fsxs3"
	"github.com/seaforth/crewdesk/pkg/iam/auth"
	"github.com/seaforth/crewdesk/pkg/logx"
)

const cvQueueName = "crewdesk:cv_jobs"

// Container holds all application dependencies
type Container struct {
	// Config
	AuthConfig auth.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	JobQueue   document.JobQueue

	// Services
	RequirementService *requirementsrv.RequirementService
	CandidateService   *candidatesrv.CandidateService
	DashboardService   *dashboardsrv.DashboardService
	DocumentService    *documentsrv.Service
	TokenService       auth.TokenService

	// API Handlers
	AuthHandlers        *auth.Handlers
	RequirementHandlers *requirementapi.Handlers
	CandidateHandlers   *candidateapi.Handlers
	DashboardHandlers   *dashboardapi.Handlers
	DocumentHandlers    *documentapi.Handlers

	// Workers
	CVWorker *worker.CVWorker

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Auth Config
	c.AuthConfig = auth.DefaultConfig()
	c.AuthConfig.Username = os.Getenv("OPERATOR_USERNAME")
	c.AuthConfig.PasswordHash = os.Getenv("OPERATOR_PASSWORD_HASH")
	c.AuthConfig.JWTSecret = os.Getenv("JWT_SECRET")
	if c.AuthConfig.JWTSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.AuthConfig.JWTSecret = "super-secret-key-please-change-me-in-production"
	}
}

func (c *Container) initServices() {
	// --- Repositories ---
	requirementRepo := requirementinfra.NewPostgresRequirementRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	documentRepo := documentinfra.NewPostgresDocumentRepository(c.DB)
	jobRepo := documentinfra.NewPostgresJobRepository(c.DB)

	// --- Queues ---
	c.JobQueue = documentinfra.NewRedisQueue(c.Redis, cvQueueName)

	// --- AI Clients ---
	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		logx.Warn("OPENAI_API_KEY is not set, CV parsing will fail")
	}
	parser := cvparser.NewCVParser(openAIKey)
	embedGen := embeddings.NewGenerator(openAIKey)

	// --- Auth ---
	c.TokenService = auth.NewJWTService(
		c.AuthConfig.JWTSecret,
		c.AuthConfig.TokenTTL,
		c.AuthConfig.JWTIssuer,
	)
	passwordSvc := auth.NewBcryptPasswordService()
	c.AuthHandlers = auth.NewHandlers(c.AuthConfig, c.TokenService, passwordSvc)
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)

	// --- Domain Services ---
	c.RequirementService = requirementsrv.NewRequirementService(requirementRepo)
	c.CandidateService = candidatesrv.NewCandidateService(candidateRepo, requirementRepo)
	c.DashboardService = dashboardsrv.NewDashboardService(requirementRepo, candidateRepo)
	c.DocumentService = documentsrv.NewService(
		documentRepo,
		jobRepo,
		parser,
		embedGen,
		c.FileSystem,
		c.JobQueue,
	)

	// --- Handlers ---
	c.RequirementHandlers = requirementapi.NewHandlers(c.RequirementService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.DashboardHandlers = dashboardapi.NewHandlers(c.DashboardService)
	c.DocumentHandlers = documentapi.NewHandlers(c.DocumentService, c.RequirementService)

	// --- Workers ---
	workers := 3
	if v := os.Getenv("CV_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			workers = n
		}
	}
	c.CVWorker = worker.NewCVWorker(c.DocumentService, c.JobQueue, workers)
}
