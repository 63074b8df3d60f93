package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"denuncias-service/auth"
	"denuncias-service/config"
	"denuncias-service/database"
	"denuncias-service/email"
	"denuncias-service/handlers"
	"denuncias-service/middleware"
	"denuncias-service/storage"
	"denuncias-service/utils"
	"denuncias-service/version"
	ws "denuncias-service/websocket"

	"github.com/apex/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	EndPointHealth     = "/health"
	EndPointVersion    = "/version"
	EndPointLogin      = "/login"
	EndPointUploads    = "/uploads/:filename"
	EndPointDenuncias  = "/denuncias"
	EndPointDenunciaID = "/denuncias/:id"
	EndPointListenWS   = "/ws/denuncias"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting the denuncias service...")

	// Connect to database
	db, err := utils.DBConnect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize database schema
	if err := database.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	// Initialize services
	complaintsService := database.NewComplaintsService(db)

	photoStore, err := storage.NewPhotoStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize photo store: %v", err)
	}

	// The token issuer only exists when a signing secret is configured.
	// Running token-gated without one is a hard startup failure.
	var authService *auth.Service
	if cfg.JWTSecret != "" {
		if cfg.AuthPassword == "" && cfg.AuthRequired {
			log.Fatal("AUTH_PASSWORD must be set when AUTH_REQUIRED is enabled")
		}
		authService, err = auth.NewService(cfg.AuthUser, cfg.AuthPassword, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			log.Fatalf("Failed to initialize auth service: %v", err)
		}
	} else if cfg.AuthRequired {
		log.Fatal("JWT_SECRET must be set when AUTH_REQUIRED is enabled")
	} else {
		log.Warn("JWT_SECRET not set, /login is disabled")
	}

	var notifier *email.Sender
	if cfg.SendGridAPIKey != "" {
		notifier = email.NewSender(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFromAddr)
	} else {
		log.Info("SENDGRID_API_KEY not set, confirmation emails disabled")
	}

	hub := ws.NewHub()
	go hub.Run()

	// Initialize handlers
	h := handlers.NewHandlers(complaintsService, photoStore, authService, notifier, hub, cfg)

	// Setup router
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	router.GET(EndPointHealth, h.HealthCheck)
	router.GET(EndPointVersion, func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get("denuncias-service"))
	})
	router.POST(EndPointLogin, h.Login)
	router.GET(EndPointUploads, h.GetPhoto)
	router.GET(EndPointListenWS, h.ListenDenuncias)

	api := router.Group("/api")
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		if cfg.AuthRequired {
			api.POST(EndPointDenuncias, middleware.AuthMiddleware(authService), h.CreateDenuncia)
		} else {
			api.POST(EndPointDenuncias, h.CreateDenuncia)
		}
		api.GET(EndPointDenuncias, h.ListDenuncias)
		api.GET(EndPointDenunciaID, h.GetDenuncia)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Denuncias service listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
