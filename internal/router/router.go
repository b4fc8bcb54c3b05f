package router

import (
	"context"
	"database/sql"

	"jm_store_backend/internal/handlers"
	"jm_store_backend/internal/notify"
	"jm_store_backend/internal/repositories"
	"jm_store_backend/internal/services"
	"jm_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	productRepo := repositories.NewProductRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	storyRepo := repositories.NewStoryRepository(db)
	contentRepo := repositories.NewContentRepository(db)

	// The registration notifier is optional; without a bot token new
	// registrations are only logged.
	var notifier notify.RegistrationNotifier = notify.NoopNotifier{}
	if token := utils.Getenv("TELEGRAM_BOT_TOKEN", ""); token != "" {
		tg, err := notify.NewTelegramNotifier(token, utils.Getenv("TELEGRAM_CHAT_ID", "0"))
		if err != nil {
			utils.LogError(err, "Setup: Telegram notifier unavailable, falling back to logging only")
		} else {
			notifier = tg
		}
	}

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	productService := services.NewProductService(productRepo, db)
	clientService := services.NewClientService(clientRepo, db, notifier)
	commentService := services.NewCommentService(commentRepo, clientRepo, db)
	storyService := services.NewStoryService(storyRepo, db)
	contentService := services.NewContentService(contentRepo)

	if err := authService.EnsureDefaultAdmin(
		utils.Getenv("ADMIN_USERNAME", "admin"),
		utils.Getenv("ADMIN_PASSWORD", "admin"),
	); err != nil {
		utils.LogError(err, "Setup: failed to seed default admin")
	}

	// The upload service needs AWS credentials; when the bucket is not
	// configured the admin upload routes are simply not registered.
	var uploadHandler *handlers.UploadHandler
	if bucket := utils.Getenv("S3_BUCKET_NAME", ""); bucket != "" {
		uploadService, err := services.NewUploadService(context.Background(), utils.Getenv("AWS_REGION", "us-east-1"), bucket)
		if err != nil {
			utils.LogError(err, "Setup: upload service unavailable")
		} else {
			uploadHandler = handlers.NewUploadHandler(uploadService)
		}
	}

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	clientHandler := handlers.NewClientHandler(clientService)
	commentHandler := handlers.NewCommentHandler(commentService)
	storyHandler := handlers.NewStoryHandler(storyService)
	contentHandler := handlers.NewContentHandler(contentService)
	reportHandler := handlers.NewReportHandler(productService, commentService, clientService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicRoutes(apiV1, productHandler, clientHandler, commentHandler, storyHandler, contentHandler, authHandler)
	SetupAdminRoutes(apiV1, productHandler, clientHandler, storyHandler, reportHandler, uploadHandler)
}
