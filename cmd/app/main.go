package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/net/netutil"

	"testprep-backend/internal/config"
	"testprep-backend/internal/controller"
	"testprep-backend/internal/db"
	"testprep-backend/internal/repository"
	"testprep-backend/internal/service"
	"testprep-backend/pkg/logging"
	"testprep-backend/pkg/middleware"
)

const version = "1.0.0"

func main() {
	printStartUpBanner()

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logging.Setup(logging.Options{
		Dir:        cfg.Logging.Dir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Debug:      cfg.Logging.Debug,
	})

	gdb, err := db.InitFromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if cfg.DB.Initialize {
		if err := db.Migrate(gdb); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Create repositories.
	userRepo := repository.NewUserRepository(gdb)
	questionRepo := repository.NewQuestionRepository(gdb)
	progressRepo := repository.NewProgressRepository(gdb)
	attemptRepo := repository.NewTestAttemptRepository(gdb)
	bookmarkRepo := repository.NewBookmarkRepository(gdb)

	if cfg.DB.Seed {
		if err := seedDatabase(userRepo, questionRepo); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	}

	// Create services.
	authService := service.NewAuthService(userRepo)
	questionService := service.NewQuestionService(questionRepo, progressRepo, attemptRepo, bookmarkRepo, cfg.Pagination.PageSize)
	testService := service.NewTestService(attemptRepo)
	progressService := service.NewProgressService(progressRepo, attemptRepo)
	reportService := service.NewReportService(progressService)
	userService := service.NewUserService(userRepo, progressRepo, attemptRepo, bookmarkRepo)

	// Initialize Gin router.
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	controller.RegisterRoutes(r, authService, questionService, testService, progressService, reportService, userService)

	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", addr, err)
	}
	// Cap concurrent connections at the configured limit.
	ln = netutil.LimitListener(ln, cfg.Context.MaxConnections)

	logging.Info("listening on %s", addr)
	if err := http.Serve(ln, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("TESTPREP", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("TESTPREP API (v%s)\n\n", version)
}
