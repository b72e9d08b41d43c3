package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wedsync/internal/config"
	"wedsync/internal/features/audit_logs"
	"wedsync/internal/features/invitations"
	projects_controllers "wedsync/internal/features/projects/controllers"
	projects_models "wedsync/internal/features/projects/models"
	"wedsync/internal/features/realtime"
	system_healthcheck "wedsync/internal/features/system/healthcheck"
	users_controllers "wedsync/internal/features/users/controllers"
	users_middleware "wedsync/internal/features/users/middleware"
	users_models "wedsync/internal/features/users/models"
	users_services "wedsync/internal/features/users/services"
	"wedsync/internal/storage"
	cache_utils "wedsync/internal/util/cache"
	env_utils "wedsync/internal/util/env"
	"wedsync/internal/util/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// @title WedSync Backend API
// @version 1.0
// @description Collaboration API for wedding planning projects

// @BasePath /api/v1
// @schemes http
func main() {
	log := logger.GetLogger()

	setUpDependencies()

	cache_utils.TestCacheConnection()
	runMigrations(log)

	handleAdminPromotion(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// Don't compress already compressed files
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	srv := &http.Server{
		Addr:    config.GetEnv().ListenAddr,
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Public routes (user auth, healthcheck, and the websocket upgrade,
	// which authenticates itself from the token query parameter)
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)
	realtime.GetRealtimeController().RegisterRoutes(v1)

	// Setup auth middleware
	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMiddleware)

	userController.RegisterProtectedRoutes(protected)
	projects_controllers.GetProjectController().RegisterProtectedRoutes(protected)
	projects_controllers.GetCollaboratorController().RegisterProtectedRoutes(protected)
	invitations.GetInvitationController().RegisterProtectedRoutes(protected)
	realtime.GetRealtimeController().RegisterProtectedRoutes(protected)
	audit_logs.GetAuditLogController().RegisterProtectedRoutes(protected)
}

func setUpDependencies() {
	audit_logs.SetupDependencies()
	realtime.SetupDependencies()
}

// Handle admin bootstrap if flag is provided
func handleAdminPromotion(log *slog.Logger) {
	adminEmail := flag.String("promote-admin", "", "Email of the user to promote to administrator")

	flag.Parse()

	if *adminEmail == "" {
		return
	}

	log.Info("Promoting user to administrator...", "email", *adminEmail)

	if err := users_services.GetUserService().PromoteUserToAdmin(*adminEmail); err != nil {
		log.Error("Failed to promote user", "error", err)
		os.Exit(1)
	}

	log.Info("User promoted successfully")
	os.Exit(0)
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	err := storage.GetDb().AutoMigrate(
		&users_models.User{},
		&users_models.SecretKey{},
		&projects_models.Project{},
		&projects_models.CollaboratorBinding{},
		&invitations.Invitation{},
		&audit_logs.AuditLog{},
	)
	if err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// Setup CORS
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
				"Access-Control-Allow-Origin",
				"X-Conn-Id",
			},
			AllowCredentials: true,
		}))
	}
}
