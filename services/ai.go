package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// maxIdeas caps how many ideas are returned from one generation
const maxIdeas = 5

// TextGenerator produces a JSON document for a prompt
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API in JSON response mode
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator bound to one model
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errs.ErrEmptyCompletion
	}
	return text, nil
}

// GeneratedPost is a full draft produced from a title
type GeneratedPost struct {
	Title   string   `json:"title" validate:"required"`
	Slug    string   `json:"slug"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"max=10,dive,required"`
}

// PostIdea is one suggestion for a future post
type PostIdea struct {
	Title   string   `json:"title" validate:"required"`
	Tags    []string `json:"tags" validate:"dive,required"`
	Tone    string   `json:"tone"`
	Summary string   `json:"summary" validate:"required"`
}

// CommentReply is a drafted answer to a reader comment
type CommentReply struct {
	Reply string `json:"reply" validate:"required"`
}

// UnmarshalJSON also accepts a bare JSON string
func (r *CommentReply) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		r.Reply = text
		return nil
	}
	type plain CommentReply
	return json.Unmarshal(data, (*plain)(r))
}

// PostSummary is a short preview text for a post
type PostSummary struct {
	Summary string `json:"summary" validate:"required"`
}

// UnmarshalJSON also accepts a bare JSON string
func (s *PostSummary) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		s.Summary = text
		return nil
	}
	type plain PostSummary
	return json.Unmarshal(data, (*plain)(s))
}

// Writer turns prompts into validated values. The generator's output is untrusted:
// anything that does not decode into the expected shape is discarded and the call is retried.
type Writer struct {
	generator TextGenerator
	validate  *validator.Validate
	attempts  int
	logger    zerolog.Logger
}

func NewWriter(generator TextGenerator) *Writer {
	return &Writer{
		generator: generator,
		validate:  validator.New(),
		attempts:  2,
		logger:    log.With().Str("component", "aiWriter").Logger(),
	}
}

func (w *Writer) GeneratePost(ctx context.Context, title, tone string) (*GeneratedPost, error) {
	post, err := generate(ctx, w, "generate blog post", postPrompt(title, tone), func(p *GeneratedPost) error {
		p.Title = strings.TrimSpace(p.Title)
		p.Tags = models.NormalizeTags(p.Tags)
		if err := w.validate.Struct(p); err != nil {
			return err
		}
		p.Slug = Slugify(p.Title)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (w *Writer) GenerateIdeas(ctx context.Context, topics string) ([]PostIdea, error) {
	ideas, err := generate(ctx, w, "generate blog post ideas", ideasPrompt(topics), func(ideas *ideaList) error {
		kept := make(ideaList, 0, len(*ideas))
		for _, idea := range *ideas {
			if err := w.validate.Struct(idea); err != nil {
				w.logger.Debug().Err(err).Str("title", idea.Title).Msg("Discarding malformed idea")
				continue
			}
			idea.Tags = models.NormalizeTags(idea.Tags)
			kept = append(kept, idea)
			if len(kept) == maxIdeas {
				break
			}
		}
		if len(kept) == 0 {
			return errors.New("no usable ideas in response")
		}
		*ideas = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return *ideas, nil
}

func (w *Writer) GenerateReply(ctx context.Context, comment, author string) (*CommentReply, error) {
	return generate(ctx, w, "generate comment reply", replyPrompt(comment, author), func(r *CommentReply) error {
		r.Reply = strings.TrimSpace(r.Reply)
		return w.validate.Struct(r)
	})
}

func (w *Writer) GenerateSummary(ctx context.Context, content string) (*PostSummary, error) {
	return generate(ctx, w, "generate post summary", summaryPrompt(content), func(s *PostSummary) error {
		s.Summary = strings.TrimSpace(s.Summary)
		return w.validate.Struct(s)
	})
}

// ideaList accepts either a bare array or an object wrapping it under "ideas"
type ideaList []PostIdea

func (l *ideaList) UnmarshalJSON(data []byte) error {
	var items []PostIdea
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var wrapped struct {
		Ideas []PostIdea `json:"ideas"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Ideas
	return nil
}

func generate[T any](ctx context.Context, w *Writer, operation, prompt string, check func(*T) error) (*T, error) {
	var lastErr error
	for attempt := 1; attempt <= w.attempts; attempt++ {
		raw, err := w.generator.GenerateJSON(ctx, prompt)
		if err != nil {
			return nil, errs.NewUpstreamError(operation, err)
		}

		var value T
		if err := decodeJSON(raw, &value); err != nil {
			lastErr = err
		} else if err := check(&value); err != nil {
			lastErr = err
		} else {
			return &value, nil
		}

		w.logger.Warn().
			Err(lastErr).
			Str("operation", operation).
			Int("attempt", attempt).
			Msg("Discarding response with unexpected shape")
	}
	return nil, errs.NewUpstreamShapeError(operation, lastErr)
}

// decodeJSON strips a Markdown code fence, if any, before decoding
func decodeJSON(raw string, dest any) error {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
