package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

func normalizeBlogPostRequest(req *blogPostRequest) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.Tags = models.NormalizeTags(req.Tags)
}

// getBlogPosts retrieves one page of posts filtered by status
// @Summary List blog posts
// @Description Returns a page of posts, newest first, plus per-status counts over all posts
// @Tags Blog Posts
// @Produce json
// @Param status query string false "published (default), draft or all"
// @Param page query int false "1-based page number"
// @Success 200 {object} services.PostPage
// @Router /posts [get]
func (h blogPostHandler) getBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := services.ParseStatus(r.URL.Query().Get("status"))
		page := services.ParsePage(r.URL.Query().Get("page"))

		result, err := h.blogPostRepo.FindPage(r.Context(), status, page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// getBlogPostBySlug retrieves a post by its exact slug
// @Summary Get blog post by slug
// @Tags Blog Posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse
// @Router /posts/slug/{slug} [get]
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		blogPost, err := h.blogPostRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

func (h blogPostHandler) getBlogPostsByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := strings.TrimSpace(chi.URLParam(r, "tag"))
		if tag == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("tag"))
			return
		}

		blogPosts, err := h.blogPostRepo.FindByTag(r.Context(), tag)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, blogPosts)
	}
}

// searchBlogPosts matches q against title and content of published posts
// @Summary Search blog posts
// @Tags Blog Posts
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} models.BlogPost
// @Failure 400 {object} ErrorResponse "Missing query"
// @Router /posts/search [get]
func (h blogPostHandler) searchBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("q"))
			return
		}

		blogPosts, err := h.blogPostRepo.Search(r.Context(), query)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, blogPosts)
	}
}

func (h blogPostHandler) getTrendingBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPosts, err := h.blogPostRepo.Trending(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "trending blog posts", err))
			return
		}

		h.responder.WriteJSON(w, blogPosts)
	}
}

// incrementViews records one view of a post
// @Summary Count a view
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} viewsResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{blogPostID}/view [post]
func (h blogPostHandler) incrementViews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views, err := h.blogPostRepo.IncrementViews(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count view of", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, viewsResponse{Views: views})
	}
}

func (h blogPostHandler) likeBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		likes, err := h.blogPostRepo.IncrementLikes(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("like", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, likesResponse{Likes: likes})
	}
}

// createBlogPost creates a new blog post authored by the caller
// @Summary Create blog post
// @Description Derives the slug from the title and stores the tags. A slug already in use is rejected.
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body blogPostRequest true "Blog post data"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} ErrorResponse "Invalid blog post data"
// @Failure 409 {object} ErrorResponse "Slug already in use"
// @Router /posts [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		req, err := decodeRequest(w, r, "blog post", normalizeBlogPostRequest)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		slug := services.Slugify(req.Title)
		if slug == "" {
			h.responder.WriteError(w, errs.NewInvalidFieldError("title", "must contain at least one letter or digit"))
			return
		}

		blogPost := models.BlogPost{
			Title:         req.Title,
			Slug:          slug,
			Content:       req.Content,
			CoverImageURL: req.CoverImageURL,
			AuthorID:      user.ID,
			IsDraft:       req.IsDraft,
			GeneratedByAI: req.GeneratedByAI,
		}
		if err := h.blogPostRepo.Add(r.Context(), &blogPost, req.Tags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		created, err := h.blogPostRepo.FindByID(r.Context(), blogPost.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "blog post", err))
			return
		}

		h.logger.Info().Str("blogPostID", created.ID.String()).Str("slug", created.Slug).Msg("Blog post created")
		h.responder.WriteCreated(w, created)
	}
}

// updateBlogPost replaces every editable field of a post. Only its author or an admin may do so.
// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param blogPost body blogPostRequest true "Updated blog post data"
// @Success 200 {object} models.BlogPost
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{blogPostID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if !canModify(user, existing.AuthorID) {
			h.responder.WriteError(w, errs.NewNotOwnerError("blog post"))
			return
		}

		req, err := decodeRequest(w, r, "blog post", normalizeBlogPostRequest)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		slug := services.Slugify(req.Title)
		if slug == "" {
			h.responder.WriteError(w, errs.NewInvalidFieldError("title", "must contain at least one letter or digit"))
			return
		}

		existing.Title = req.Title
		existing.Slug = slug
		existing.Content = req.Content
		existing.CoverImageURL = req.CoverImageURL
		existing.IsDraft = req.IsDraft
		existing.GeneratedByAI = req.GeneratedByAI
		if err := h.blogPostRepo.Update(r.Context(), existing, req.Tags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}

		updated, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}

		h.logger.Info().Str("blogPostID", blogPostID.String()).Msg("Blog post deleted")
		h.responder.WriteJSON(w, MessageResponse{Message: "Blog post deleted"})
	}
}
