// Package cli provides the cobra command surface for boothcache.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/boothcache/internal/adapters/driven/config/file"
	"github.com/custodia-labs/boothcache/internal/core/ports/driving"
	"github.com/custodia-labs/boothcache/internal/logger"
)

// version is set at build time.
var version = "dev"

var (
	dataDir    string
	verbose    bool
	outputJSON bool
)

// Services holds the core services the commands drive.
type Services struct {
	Items       driving.ItemService
	Favorites   driving.FavoriteService
	Collections driving.CollectionService
	Tags        driving.TagService
	History     driving.SearchHistoryService
	Popular     driving.PopularService
	Stats       driving.StatsService
	Settings    driving.SettingsService
	Updates     driving.PendingUpdateCell

	// ConfigFile is watched for changes while the MCP server runs. Optional.
	ConfigFile *file.ConfigStore

	// Gatherer serves /metrics while the MCP server runs. Optional.
	Gatherer prometheus.Gatherer
}

// Bootstrap opens the stores under dataDir and wires the services.
// The returned closer releases the stores.
type Bootstrap func(dataDir string) (*Services, io.Closer, error)

var (
	services  *Services
	bootstrap Bootstrap
	closer    io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "boothcache",
	Short: "Local catalog cache for marketplace items",
	Long: `boothcache keeps a local copy of marketplace catalog items together with
favorites, collections, tags, search history and a popular items snapshot,
and reports statistics over them.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.boothcache)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function used to wire services on first use.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices injects already wired services. Used by tests.
func SetServices(s *Services) {
	services = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if services != nil || bootstrap == nil || cmd.Name() == "version" {
		return nil
	}

	s, c, err := bootstrap(dataDir)
	if err != nil {
		return err
	}
	services = s
	closer = c
	return nil
}

// Shutdown releases whatever the bootstrap opened.
func Shutdown() error {
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	services = nil
	return err
}

// requireServices returns the wired services or an error when none are set.
func requireServices() (*Services, error) {
	if services == nil {
		return nil, errors.New("services not configured")
	}
	return services, nil
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
