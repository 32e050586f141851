package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/roi-ocr-mcp/internal/config"
	"github.com/ironsheep/roi-ocr-mcp/internal/logging"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr/tesseract"
	"github.com/ironsheep/roi-ocr-mcp/internal/server"
)

// newRecognizer builds the recognition engine. Tests replace it.
var newRecognizer = func(cfg *config.Config) ocr.Recognizer {
	return tesseract.New(cfg.TessdataPrefix)
}

// NewRootCmd creates the root command, which serves MCP over stdio.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roi-ocr-mcp",
		Short: "Extract text from a selected region of an image",
		Long: `roi-ocr-mcp lets a user draw a rectangle on a screen-sized copy of an
image and extracts the text from the matching region of the full-resolution
original.

Without a subcommand it runs as an MCP server, reading JSON-RPC requests on
stdin and writing responses on stdout. Logs go to stderr.

Configuration is read from defaults, an optional YAML file (--config), an
optional .env file and ROI_OCR_* environment variables, in that order.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runServeCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().String("env-file", config.DefaultDotEnvFile, "Path to a .env file (ignored when missing)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	cmd.PersistentFlags().String("log-format", "", "Log format: console or json")

	// Add subcommands
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the configuration and builds the stderr logger from
// the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	cfg, err := config.Load(path, envFile)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat, _ = cmd.Flags().GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

// runServeCmd runs the MCP server until stdin closes or the process is
// interrupted.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("commit", getCommit()).
		Str("built", getDate()).
		Str("language", cfg.Language).
		Int("page_seg_mode", cfg.PageSegMode).
		Dur("timeout", cfg.RecognitionTimeout).
		Msg("configuration loaded")

	srv := server.New(newRecognizer(cfg),
		server.WithConfig(cfg),
		server.WithLogger(logger),
		server.WithVersion(getVersion()),
	)
	return srv.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
