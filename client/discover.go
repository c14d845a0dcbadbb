package client

import (
	"context"
	"strings"
	"sync"

	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostSearch holds the search box state
type PostSearch struct {
	client *Client
	logger zerolog.Logger

	mu          sync.Mutex
	query       string
	results     []models.BlogPost
	hasSearched bool
	loading     bool
	lastError   string
}

func NewPostSearch(client *Client) *PostSearch {
	return &PostSearch{
		client: client,
		logger: log.With().Str("unit", "postSearch").Logger(),
	}
}

// Search runs query against published posts. A blank query is ignored.
// A failure empties the results.
func (s *PostSearch) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.mu.Lock()
	s.query = query
	s.hasSearched = true
	s.loading = true
	s.mu.Unlock()

	posts, err := s.client.SearchPosts(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query != query || !s.hasSearched {
		// cleared or replaced while in flight
		return nil
	}
	s.loading = false
	if err != nil {
		s.results = nil
		s.lastError = "Search failed"
		s.logger.Error().Err(err).Str("query", query).Msg("error searching posts")
		return err
	}
	s.results = posts
	s.lastError = ""
	return nil
}

// Clear resets the query and results
func (s *PostSearch) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.results = nil
	s.hasSearched = false
	s.loading = false
	s.lastError = ""
}

func (s *PostSearch) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *PostSearch) Results() []models.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.BlogPost{}, s.results...)
}

// HasSearched distinguishes "no matches" from "nothing searched yet"
func (s *PostSearch) HasSearched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasSearched
}

func (s *PostSearch) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *PostSearch) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// TrendingPosts holds the sidebar list of most viewed posts
type TrendingPosts struct {
	client *Client
	logger zerolog.Logger

	mu        sync.Mutex
	posts     []models.BlogPost
	loading   bool
	lastError string
}

func NewTrendingPosts(client *Client) *TrendingPosts {
	return &TrendingPosts{
		client: client,
		logger: log.With().Str("unit", "trendingPosts").Logger(),
	}
}

// Load fetches the list. A failure empties it.
func (t *TrendingPosts) Load(ctx context.Context) error {
	t.mu.Lock()
	t.loading = true
	t.mu.Unlock()

	posts, err := t.client.TrendingPosts(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if err != nil {
		t.posts = nil
		t.lastError = "Failed to fetch trending posts"
		t.logger.Error().Err(err).Msg("error fetching trending posts")
		return err
	}
	t.posts = posts
	t.lastError = ""
	return nil
}

func (t *TrendingPosts) Posts() []models.BlogPost {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.BlogPost{}, t.posts...)
}

func (t *TrendingPosts) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

func (t *TrendingPosts) Error() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastError
}

// DashboardData holds the admin overview
type DashboardData struct {
	client *Client
	logger zerolog.Logger

	mu        sync.Mutex
	dashboard *services.Dashboard
	maxViews  int64
	loading   bool
	lastError string
}

func NewDashboardData(client *Client) *DashboardData {
	return &DashboardData{
		client: client,
		logger: log.With().Str("unit", "dashboardData").Logger(),
	}
}

// Load fetches the overview. A failure keeps the last good one.
func (d *DashboardData) Load(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	dashboard, err := d.client.Dashboard(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.lastError = "Failed to fetch dashboard data"
		d.logger.Error().Err(err).Msg("error fetching dashboard")
		return err
	}
	d.dashboard = dashboard
	d.maxViews = 0
	for _, post := range dashboard.TopPosts {
		d.maxViews = max(d.maxViews, post.Views)
	}
	d.lastError = ""
	return nil
}

// Dashboard returns the last loaded overview, or nil before the first success
func (d *DashboardData) Dashboard() *services.Dashboard {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dashboard
}

// MaxViews is the view count of the most viewed top post, the scale for the bar chart
func (d *DashboardData) MaxViews() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxViews
}

func (d *DashboardData) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *DashboardData) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastError
}
