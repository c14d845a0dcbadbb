package api

import (
	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	blogPostHandler  blogPostHandler
	commentHandler   commentHandler
	dashboardHandler dashboardHandler
	aiHandler        aiHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse acknowledges a mutation that returns no entity
type MessageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Name             string  `json:"name" validate:"required"`
	Email            string  `json:"email" validate:"required,email"`
	Password         string  `json:"password" validate:"required,min=6"`
	ProfileImageURL  *string `json:"profileImageUrl" validate:"omitempty,url"`
	Bio              string  `json:"bio"`
	AdminAccessToken string  `json:"adminAccessToken"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the caller's profile plus a fresh access token
type authResponse struct {
	*models.User
	Token string `json:"token"`
}

// blogPostRequest carries every editable field of a post, for create and update alike
type blogPostRequest struct {
	Title         string   `json:"title" validate:"required"`
	Content       string   `json:"content" validate:"required"`
	CoverImageURL *string  `json:"coverImageUrl" validate:"omitempty,url"`
	Tags          []string `json:"tags" validate:"max=20"`
	IsDraft       bool     `json:"isDraft"`
	GeneratedByAI bool     `json:"generatedByAI"`
}

type viewsResponse struct {
	Views int64 `json:"views"`
}

type likesResponse struct {
	Likes int64 `json:"likes"`
}

type commentRequest struct {
	Content       string     `json:"content" validate:"required"`
	ParentComment *uuid.UUID `json:"parentComment"`
}

type deleteCommentResponse struct {
	Message        string `json:"message"`
	RemovedReplies int64  `json:"removedReplies"`
}

type generatePostRequest struct {
	Title string `json:"title" validate:"required"`
	Tone  string `json:"tone"`
}

type generateIdeasRequest struct {
	Topics string `json:"topics" validate:"required"`
}

type generateReplyRequest struct {
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"`
}

type generateSummaryRequest struct {
	Content string `json:"content" validate:"required"`
}

// aiResponse wraps a generated value
type aiResponse struct {
	Content any `json:"content"`
}
