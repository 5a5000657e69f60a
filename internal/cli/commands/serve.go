package commands

import (
	"crypto/rand"
	"encoding/hex"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbglance/dbglance/internal/cli/config"
	"github.com/dbglance/dbglance/internal/database"
	"github.com/dbglance/dbglance/internal/session"
	"github.com/dbglance/dbglance/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port int
	Host string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dbglance web UI",
		Long: `Start a local web server for interactive database exploration.

Upload a SQLite file, browse tables and columns, run ad-hoc SQL, and
build bar/line/scatter/pie charts from query results. Each browser
session owns its own uploaded copy; nothing is shared or persisted.`,
		Example: `  # Start on the default port
  dbglance serve

  # Start on a custom port
  dbglance serve --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8910)")
	cmd.Flags().StringVar(&opts.Host, "host", "", "Host to bind (default: 127.0.0.1)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	// CLI flags override config file
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.Host != "" {
		cfg.Host = opts.Host
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
		logger.Debug("generated ephemeral session secret")
	}

	manager := session.NewManager(cfg.SessionTTL, logger)

	srv := ui.NewServer(ui.Config{
		Manager:       manager,
		Host:          cfg.Host,
		Port:          cfg.Port,
		SessionSecret: secret,
		Logger:        logger,
		Load: database.LoadOptions{
			MaxBytes: cfg.MaxUploadBytes,
			TempDir:  cfg.TempDir,
		},
		Run: database.RunOptions{
			Timeout: cfg.QueryTimeout,
			MaxRows: cfg.MaxRows,
		},
		SampleLimit: cfg.SampleLimit,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}

func randomSecret() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
