package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/api"
	"github.com/rpupo63/blog-platform-backend/config"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
)

// rootCmd serves the API when called without a subcommand
var rootCmd = &cobra.Command{
	Use:           "blog",
	Short:         "Blog platform API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and serve the REST API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the schema and report undeclared columns",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Exiting")
	}
}

// loadConfig reads .env, the environment and, when SSM_PARAMETER_PATH is set, the parameter store
func loadConfig(ctx context.Context) (map[string]string, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	c := config.New()

	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	prefix := config.GetString(c, "SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return c, nil
	}

	store, err := config.NewParameterStore(ctx, config.GetString(c, "AWS_REGION", ""))
	if err != nil {
		return nil, err
	}
	loaded, err := config.LoadParameters(ctx, c, store, prefix)
	if err != nil {
		return nil, err
	}
	log.Info().Int("count", loaded).Str("path", prefix).Msg("Loaded parameters")
	return c, nil
}

func openDatabase(c map[string]string) (*gorm.DB, error) {
	log.Info().Str("dbType", config.GetString(c, "DB_TYPE", "postgres")).Msg("Connecting to database")
	db, err := database.Open(c)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := models.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}

	drift, err := models.ColumnDrift(db)
	if err != nil {
		return err
	}
	if len(drift) == 0 {
		log.Info().Msg("Schema matches models")
		return nil
	}
	for _, table := range drift {
		log.Warn().Str("table", table.Table).Strs("columns", table.Columns).Msg("Columns not declared by any model")
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}

	var writer *services.Writer
	if apiKey := config.GetString(c, "GOOGLE_API_KEY", ""); apiKey != "" {
		generator, err := services.NewGeminiGenerator(ctx, apiKey, config.GetString(c, "AI_MODEL", services.DefaultModel))
		if err != nil {
			return err
		}
		writer = services.NewWriter(generator)
	} else {
		log.Warn().Msg("GOOGLE_API_KEY not set, AI endpoints will answer 503")
	}

	server, err := api.NewServer(database.New(db), c, writer)
	if err != nil {
		return fmt.Errorf("error initializing server: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Err(fatalErr).Msg("Closing server")

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
