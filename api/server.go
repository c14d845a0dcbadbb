package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rpupo63/blog-platform-backend/auth"
	"github.com/rpupo63/blog-platform-backend/config"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/rs/zerolog/log"
)

// APIPrefix is the mount point of every route
const APIPrefix = "/api/v1"

// DefaultMaxCommentDepth is the deepest reply level accepted when MAX_COMMENT_DEPTH is unset
const DefaultMaxCommentDepth = 3

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer wires the router from configuration. writer may be nil when no generator is configured.
func NewServer(database database.Database, c map[string]string, writer *services.Writer) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router, err := newRouter(database, withConfig(c), withWriter(writer))
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config map[string]string
	writer *services.Writer
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withWriter(writer *services.Writer) func(*router) {
	return func(r *router) {
		r.writer = writer
	}
}

func newRouter(database database.Database, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	tokens, err := auth.NewTokenService(
		config.GetString(router.config, "JWT_SECRET", ""),
		config.GetDuration(router.config, "JWT_EXPIRES_IN", auth.DefaultTokenLifetime),
	)
	if err != nil {
		return nil, err
	}

	handlers := initializeHandlers(database, handlerDeps{
		tokens:           tokens,
		writer:           router.writer,
		adminAccessToken: config.GetString(router.config, "ADMIN_ACCESS_TOKEN", ""),
		maxCommentDepth:  config.GetInt(router.config, "MAX_COMMENT_DEPTH", DefaultMaxCommentDepth),
	})

	authMiddleware := newAuthMiddleware(tokens, database.UserRepo())

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return originAllowed(acceptedOrigins, origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	chiRouter.Route(APIPrefix, func(r chi.Router) {
		setupRoutes(r, handlers, authMiddleware)
	})

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
