package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boothcache/internal/adapters/driven/config/file"
	"github.com/custodia-labs/boothcache/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/boothcache/internal/adapters/driving/mcp"
	"github.com/custodia-labs/boothcache/internal/logger"
)

var (
	mcpHTTPAddr    string
	mcpMetricsAddr string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server. Every cache operation is exposed
as a tool; collections, items and statistics are also readable as resources.

By default, the server communicates over stdio using JSON-RPC. Use --http to
serve the streamable HTTP transport instead.

While the server runs, edits to config.toml are picked up without a restart.

Examples:
  # Stdio mode (default)
  boothcache mcp

  # HTTP mode with Prometheus metrics
  boothcache mcp --http :8080 --metrics-addr :9090`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio")
	mcpCmd.Flags().StringVar(&mcpMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.AddCommand(mcpCmd)
}

// mcpPorts maps the wired services onto the MCP server ports.
func mcpPorts(s *Services) *mcp.Ports {
	return &mcp.Ports{
		Items:       s.Items,
		Favorites:   s.Favorites,
		Collections: s.Collections,
		Tags:        s.Tags,
		History:     s.History,
		Popular:     s.Popular,
		Stats:       s.Stats,
		Updates:     s.Updates,
	}
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(mcpPorts(s))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if s.ConfigFile != nil {
		watcher, err := file.NewWatcher(s.ConfigFile)
		if err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		defer watcher.Close()
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if mcpMetricsAddr != "" {
		if s.Gatherer == nil {
			return errors.New("metrics are not enabled")
		}
		go serveMetrics(ctx, s, mcpMetricsAddr)
	}

	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}

	return server.Run(ctx)
}

func serveMetrics(ctx context.Context, s *Services, addr string) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           prometheus.NewMux(s.Gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("metrics: serving on http://%s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server: %v", err)
	}
}
