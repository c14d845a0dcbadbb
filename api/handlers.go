package api

import (
	"github.com/rpupo63/blog-platform-backend/auth"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/services"
)

// handlerDeps are the collaborators shared by the handlers
type handlerDeps struct {
	tokens           *auth.TokenService
	writer           *services.Writer
	adminAccessToken string
	maxCommentDepth  int
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, deps handlerDeps) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(database.UserRepo(), deps.tokens, deps.adminAccessToken),
		blogPostHandler:  newBlogPostHandler(database.BlogPostRepo()),
		commentHandler:   newCommentHandler(database.CommentRepo(), database.BlogPostRepo(), deps.maxCommentDepth),
		dashboardHandler: newDashboardHandler(database.DashboardRepo()),
		aiHandler:        newAIHandler(deps.writer),
	}
}
