// bundleserve serves a pre-built browser bundle (bootstrap HTML, scripts,
// WebAssembly runtime, wheels) over HTTP for local manual testing.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/vesaa/bundleserve/internal/config"
	"github.com/vesaa/bundleserve/internal/server"
)

const version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "bundleserve",
		Short: "Serve a static browser bundle on a loopback address",
		Long: `bundleserve exposes the directory produced by the packaging scripts over HTTP.
"/" returns the patched bootstrap HTML; every other path is a file under the bundle root.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	config.BindFlags(root.PersistentFlags())

	// ── serve subcommand ──────────────────────────────────────────────────────
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the static asset server (default when no subcommand is given)",
		RunE:  runServe,
	}

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print bundleserve version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bundleserve %s\n", version)
		},
	}

	root.AddCommand(serveCmd, newHealthcheckCmd(), versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(serverConfig(cfg))
	if err != nil {
		return err
	}

	if _, err := os.Stat(srv.IndexPath()); errors.Is(err, os.ErrNotExist) {
		log.Printf("[serve] root document %s is missing; GET / will fail until packaging is re-run", srv.IndexPath())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Starting server on http://%s\n", cfg.Addr())
	if err := srv.Run(ctx); err != nil {
		return err
	}
	fmt.Println("\n  → Shut down")
	return nil
}

// serverConfig maps loaded settings onto a server instance description.
func serverConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Root:            cfg.RootDir,
		Index:           cfg.IndexPath(),
		ContentTypes:    server.DefaultContentTypes().With(cfg.MIMEOverrides),
		ShutdownTimeout: time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
	}
}
