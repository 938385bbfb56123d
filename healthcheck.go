// healthcheck.go implements a self-probe so a running server can be checked
// from scripts or a container HEALTHCHECK without curl or wget.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vesaa/bundleserve/internal/config"
	"github.com/vesaa/bundleserve/internal/server"
)

// Usage:  bundleserve healthcheck [url]   (default http://<host>:<port>/ from config)
// Exit 0 = root document served, Exit 1 = anything else.
func newHealthcheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healthcheck [url]",
		Short: "Check that a running server answers GET / with 200",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) == 1 {
				url = args[0]
			} else {
				cfg, err := config.Load(cmd.Flags())
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				url = fmt.Sprintf("http://%s/", cfg.Addr())
			}

			timeout, _ := cmd.Flags().GetDuration("timeout")
			if err := server.Probe(cmd.Context(), url, timeout); err != nil {
				return fmt.Errorf("healthcheck failed: %w", err)
			}
			fmt.Printf("ok: %s\n", url)
			return nil
		},
	}
	cmd.Flags().Duration("timeout", 3*time.Second, "Request timeout")
	return cmd
}
