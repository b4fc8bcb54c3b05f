package router

import (
	"jm_store_backend/internal/handlers"
	"jm_store_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes sets up the storefront-facing routes.
func SetupPublicRoutes(
	apiGroup *gin.RouterGroup,
	productHandler *handlers.ProductHandler,
	clientHandler *handlers.ClientHandler,
	commentHandler *handlers.CommentHandler,
	storyHandler *handlers.StoryHandler,
	contentHandler *handlers.ContentHandler,
	authHandler *handlers.AuthHandler,
) {
	apiGroup.GET("/products", productHandler.GetProducts)
	apiGroup.GET("/products/:id", productHandler.GetProductByID)
	apiGroup.GET("/products/:id/comments", commentHandler.GetProductComments)
	apiGroup.PATCH("/products/:id/likes", productHandler.UpdateLikes)

	apiGroup.POST("/register", clientHandler.Register)
	apiGroup.GET("/clients/count", clientHandler.GetClientCount)
	apiGroup.GET("/clients/lookup", clientHandler.LookupClient)

	apiGroup.GET("/comments", commentHandler.GetComments)
	apiGroup.POST("/comments", commentHandler.PostComment)

	apiGroup.GET("/stories", storyHandler.GetStories)

	apiGroup.GET("/testimonials", contentHandler.GetTestimonials)
	apiGroup.GET("/features", contentHandler.GetFeatures)

	apiGroup.POST("/admin/login", authHandler.Login)
}

// SetupAdminRoutes sets up the token-gated admin panel routes.
func SetupAdminRoutes(
	apiGroup *gin.RouterGroup,
	productHandler *handlers.ProductHandler,
	clientHandler *handlers.ClientHandler,
	storyHandler *handlers.StoryHandler,
	reportHandler *handlers.ReportHandler,
	uploadHandler *handlers.UploadHandler,
) {
	adminRoutes := apiGroup.Group("/admin")
	adminRoutes.Use(middleware.AdminAuthMiddleware())
	{
		adminRoutes.POST("/products", productHandler.SaveProduct)
		adminRoutes.PUT("/products", productHandler.SaveProduct)
		adminRoutes.DELETE("/products/:id", productHandler.DeleteProduct)

		adminRoutes.GET("/clients", clientHandler.GetClients)
		adminRoutes.GET("/engagement", reportHandler.GetEngagement)

		adminRoutes.POST("/stories", storyHandler.CreateStory)
		adminRoutes.DELETE("/stories/:id", storyHandler.DeleteStory)

		if uploadHandler != nil {
			adminRoutes.POST("/uploads/presign", uploadHandler.PresignUpload)
		}
	}
}
