package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts every endpoint. Public, authenticated and admin routes are separate groups.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Use(ColoredHTTPLoggingMiddleware)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Get("/posts", handlers.blogPostHandler.getBlogPosts())
		r.Get("/posts/slug/{slug}", handlers.blogPostHandler.getBlogPostBySlug())
		r.Get("/posts/tag/{tag}", handlers.blogPostHandler.getBlogPostsByTag())
		r.Get("/posts/search", handlers.blogPostHandler.searchBlogPosts())
		r.Get("/posts/trending", handlers.blogPostHandler.getTrendingBlogPosts())
		r.Post("/posts/{blogPostID}/view", handlers.blogPostHandler.incrementViews())

		r.Get("/comments", handlers.commentHandler.getAllComments())
		r.Get("/comments/{id}", handlers.commentHandler.getCommentsByPost())

		r.Post("/ai/generate-summary", handlers.aiHandler.generateSummary())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/auth/profile", handlers.authHandler.profile())

		r.Put("/posts/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
		r.Post("/posts/{blogPostID}/like", handlers.blogPostHandler.likeBlogPost())

		r.Post("/comments/{id}", handlers.commentHandler.addComment())
		r.Delete("/comments/{id}", handlers.commentHandler.deleteComment())

		r.Post("/ai/generate", handlers.aiHandler.generateBlogPost())
		r.Post("/ai/generate-ideas", handlers.aiHandler.generateIdeas())
		r.Post("/ai/generate-reply", handlers.aiHandler.generateReply())

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)

			r.Post("/posts", handlers.blogPostHandler.createBlogPost())
			r.Delete("/posts/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
			r.Get("/dashboard", handlers.dashboardHandler.getDashboard())
		})
	})
}
