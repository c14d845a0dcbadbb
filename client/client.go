package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
)

const (
	// DefaultTimeout bounds every request made by the client
	DefaultTimeout = 8 * time.Second
	dialTimeout    = 5 * time.Second
)

// TokenSource supplies the bearer token for outgoing requests. An empty token sends none.
type TokenSource interface {
	Token() string
}

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Field      string `json:"field,omitempty"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%d: %s (%s)", e.StatusCode, e.Message, e.Field)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *APIError
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type authenticatedTransport struct {
	tokens              TokenSource
	underlyingTransport http.RoundTripper
}

// RoundTrip adds the bearer token, when there is one, to a copy of the request
func (t *authenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.underlyingTransport.RoundTrip(req)
}

// Client talks to the blog REST API
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*http.Client)

// WithTimeout overrides DefaultTimeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *http.Client) {
		c.Timeout = timeout
	}
}

// WithTransport replaces the underlying round tripper. The bearer token is still added.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *http.Client) {
		c.Transport.(*authenticatedTransport).underlyingTransport = transport
	}
}

// New returns a client for the API mounted at baseURL, e.g. http://localhost:8080/api/v1
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	dialer := &net.Dialer{Timeout: dialTimeout}
	httpClient := &http.Client{
		Transport: &authenticatedTransport{
			tokens:              tokens,
			underlyingTransport: &http.Transport{DialContext: dialer.DialContext},
		},
		Timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(httpClient)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// AuthResult is the profile and token returned by register and login
type AuthResult struct {
	models.User
	Token string `json:"token"`
}

// RegisterInput is the sign-up form
type RegisterInput struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	ProfileImageURL  *string `json:"profileImageUrl,omitempty"`
	Bio              string  `json:"bio,omitempty"`
	AdminAccessToken string  `json:"adminAccessToken,omitempty"`
}

// PostInput carries the editable fields of a post
type PostInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	CoverImageURL *string  `json:"coverImageUrl,omitempty"`
	Tags          []string `json:"tags"`
	IsDraft       bool     `json:"isDraft"`
	GeneratedByAI bool     `json:"generatedByAI"`
}

// DeleteCommentResult reports how many replies went with a deleted comment
type DeleteCommentResult struct {
	Message        string `json:"message"`
	RemovedReplies int64  `json:"removedReplies"`
}

type envelope[T any] struct {
	Content T `json:"content"`
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Posts fetches one page of the listing for status
func (c *Client) Posts(ctx context.Context, status services.PostStatus, page int) (*services.PostPage, error) {
	query := url.Values{}
	query.Set("status", string(status))
	query.Set("page", strconv.Itoa(page))

	var result services.PostPage
	if err := c.do(ctx, http.MethodGet, "/posts?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := c.do(ctx, http.MethodGet, "/posts/slug/"+url.PathEscape(slug), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) PostsByTag(ctx context.Context, tag string) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := c.do(ctx, http.MethodGet, "/posts/tag/"+url.PathEscape(tag), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) SearchPosts(ctx context.Context, q string) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := c.do(ctx, http.MethodGet, "/posts/search?q="+url.QueryEscape(q), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) TrendingPosts(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := c.do(ctx, http.MethodGet, "/posts/trending", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ViewPost records a view and returns the new count
func (c *Client) ViewPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var result struct {
		Views int64 `json:"views"`
	}
	if err := c.do(ctx, http.MethodPost, "/posts/"+postID.String()+"/view", nil, &result); err != nil {
		return 0, err
	}
	return result.Views, nil
}

// LikePost records a like and returns the new count
func (c *Client) LikePost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var result struct {
		Likes int64 `json:"likes"`
	}
	if err := c.do(ctx, http.MethodPost, "/posts/"+postID.String()+"/like", nil, &result); err != nil {
		return 0, err
	}
	return result.Likes, nil
}

func (c *Client) CreatePost(ctx context.Context, input PostInput) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := c.do(ctx, http.MethodPost, "/posts", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, postID uuid.UUID, input PostInput) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := c.do(ctx, http.MethodPut, "/posts/"+postID.String(), input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, postID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+postID.String(), nil, nil)
}

// Comments fetches the comment tree of one post
func (c *Client) Comments(ctx context.Context, postID uuid.UUID) ([]*services.CommentNode, error) {
	var tree []*services.CommentNode
	if err := c.do(ctx, http.MethodGet, "/comments/"+postID.String(), nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// AllComments fetches the comment tree across every post
func (c *Client) AllComments(ctx context.Context) ([]*services.CommentNode, error) {
	var tree []*services.CommentNode
	if err := c.do(ctx, http.MethodGet, "/comments", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// AddComment posts a comment, or a reply when parentID is set
func (c *Client) AddComment(ctx context.Context, postID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	body := struct {
		Content       string     `json:"content"`
		ParentComment *uuid.UUID `json:"parentComment,omitempty"`
	}{content, parentID}

	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/comments/"+postID.String(), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID uuid.UUID) (*DeleteCommentResult, error) {
	var result DeleteCommentResult
	if err := c.do(ctx, http.MethodDelete, "/comments/"+commentID.String(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Dashboard(ctx context.Context) (*services.Dashboard, error) {
	var dashboard services.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *Client) GeneratePost(ctx context.Context, title, tone string) (*services.GeneratedPost, error) {
	body := map[string]string{"title": title, "tone": tone}
	var result envelope[services.GeneratedPost]
	if err := c.do(ctx, http.MethodPost, "/ai/generate", body, &result); err != nil {
		return nil, err
	}
	return &result.Content, nil
}

func (c *Client) GenerateIdeas(ctx context.Context, topics string) ([]services.PostIdea, error) {
	body := map[string]string{"topics": topics}
	var result envelope[[]services.PostIdea]
	if err := c.do(ctx, http.MethodPost, "/ai/generate-ideas", body, &result); err != nil {
		return nil, err
	}
	return result.Content, nil
}

func (c *Client) GenerateReply(ctx context.Context, content, author string) (string, error) {
	body := map[string]string{"content": content, "author": author}
	var result envelope[services.CommentReply]
	if err := c.do(ctx, http.MethodPost, "/ai/generate-reply", body, &result); err != nil {
		return "", err
	}
	return result.Content.Reply, nil
}

func (c *Client) GenerateSummary(ctx context.Context, content string) (*services.PostSummary, error) {
	body := map[string]string{"content": content}
	var result envelope[services.PostSummary]
	if err := c.do(ctx, http.MethodPost, "/ai/generate-summary", body, &result); err != nil {
		return nil, err
	}
	return &result.Content, nil
}

// do sends one JSON request and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshalling request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(resp.Body)
		return handleAPIError(resp, errBody)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %v", err)
	}
	return nil
}

func handleAPIError(r *http.Response, errBody []byte) *APIError {
	apiErr := APIError{StatusCode: r.StatusCode}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		apiErr.Message = strings.TrimSpace(string(errBody))
		return &apiErr
	}
	if err := json.Unmarshal(errBody, &apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(errBody))
	}
	return &apiErr
}
