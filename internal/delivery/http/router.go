package http

import (
	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/delivery/http/handler"
	"github.com/penpalhq/penpals-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler     *handler.AuthHandler
	accountHandler  *handler.AccountHandler
	profileHandler  *handler.ProfileHandler
	relationHandler *handler.RelationHandler
	postHandler     *handler.PostHandler
	documentHandler *handler.DocumentHandler
	authMiddleware  *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	profileHandler *handler.ProfileHandler,
	relationHandler *handler.RelationHandler,
	postHandler *handler.PostHandler,
	documentHandler *handler.DocumentHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:     authHandler,
		accountHandler:  accountHandler,
		profileHandler:  profileHandler,
		relationHandler: relationHandler,
		postHandler:     postHandler,
		documentHandler: documentHandler,
		authMiddleware:  authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Account routes
			account := protected.Group("/account")
			{
				account.GET("", r.accountHandler.Get)
				account.PUT("", r.accountHandler.Update)
				account.DELETE("", r.accountHandler.Delete)
				account.GET("/classrooms", r.accountHandler.Classrooms)
				account.GET("/stats", r.accountHandler.Stats)
			}

			// Profile routes
			profiles := protected.Group("/profiles")
			{
				profiles.POST("", r.profileHandler.Create)
				profiles.POST("/search", r.profileHandler.Search)
				profiles.GET("/:profile_id", r.profileHandler.Get)
				profiles.PUT("/:profile_id", r.profileHandler.Update)
				profiles.DELETE("/:profile_id", r.profileHandler.Delete)

				profiles.POST("/:profile_id/connect", r.relationHandler.Connect)
				profiles.DELETE("/:profile_id/disconnect", r.relationHandler.Disconnect)
				profiles.GET("/:profile_id/friends", r.relationHandler.Friends)
			}

			// Post routes
			posts := protected.Group("/posts")
			{
				posts.POST("", r.postHandler.Create)
				posts.GET("/:post_id", r.postHandler.Get)
				posts.PUT("/:post_id", r.postHandler.Update)
				posts.DELETE("/:post_id", r.postHandler.Delete)
			}

			// Raw document routes
			documents := protected.Group("/documents")
			{
				documents.POST("/upload", r.documentHandler.Upload)
				documents.POST("/query", r.documentHandler.Query)
				documents.DELETE("", r.documentHandler.Delete)
				documents.PUT("", r.documentHandler.Update)
				documents.GET("/info", r.documentHandler.Info)
			}
		}
	}

	return router
}
