package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type aiHandler struct {
	responder Responder
	logger    zerolog.Logger
	writer    *services.Writer
}

// newAIHandler builds the AI handler. With a nil writer every endpoint answers 503.
func newAIHandler(writer *services.Writer) aiHandler {
	logger := log.With().Str("handlerName", "aiHandler").Logger()

	return aiHandler{
		responder: NewResponder(logger),
		logger:    logger,
		writer:    writer,
	}
}

// requireWriter fails with 503 when no generator is configured
func (h aiHandler) requireWriter() error {
	if h.writer == nil {
		return errs.NewServiceUnavailableError("AI generation")
	}
	return nil
}

// generateBlogPost drafts a full post from a title
// @Summary Generate blog post
// @Tags AI
// @Accept json
// @Produce json
// @Param request body generatePostRequest true "Title and tone"
// @Success 200 {object} aiResponse
// @Failure 502 {object} ErrorResponse "Generator failed or returned an unusable response"
// @Failure 503 {object} ErrorResponse "Generator not configured"
// @Router /ai/generate [post]
func (h aiHandler) generateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.requireWriter(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req, err := decodeRequest(w, r, "generate blog post", func(req *generatePostRequest) {
			req.Title = strings.TrimSpace(req.Title)
			req.Tone = strings.TrimSpace(req.Tone)
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.writer.GeneratePost(r.Context(), req.Title, req.Tone)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, aiResponse{Content: post})
	}
}

func (h aiHandler) generateIdeas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.requireWriter(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req, err := decodeRequest(w, r, "generate ideas", func(req *generateIdeasRequest) {
			req.Topics = strings.TrimSpace(req.Topics)
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ideas, err := h.writer.GenerateIdeas(r.Context(), req.Topics)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, aiResponse{Content: ideas})
	}
}

func (h aiHandler) generateReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.requireWriter(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req, err := decodeRequest(w, r, "generate reply", func(req *generateReplyRequest) {
			req.Content = strings.TrimSpace(req.Content)
			req.Author = strings.TrimSpace(req.Author)
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		reply, err := h.writer.GenerateReply(r.Context(), req.Content, req.Author)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, aiResponse{Content: reply})
	}
}

func (h aiHandler) generateSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.requireWriter(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req, err := decodeRequest(w, r, "generate summary", func(req *generateSummaryRequest) {
			req.Content = strings.TrimSpace(req.Content)
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		summary, err := h.writer.GenerateSummary(r.Context(), req.Content)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, aiResponse{Content: summary})
	}
}
