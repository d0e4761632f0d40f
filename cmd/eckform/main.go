package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xelth-com/eckform/internal/config"
	"github.com/xelth-com/eckform/internal/logging"
	"go.uber.org/zap"
)

// app carries what PersistentPreRunE prepared for the subcommands
type app struct {
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "eckform",
		Short: "eckform - stock entry form manager",
		Long: `eckform keeps stock entry records (location, product, lot, order,
material, warehouse, person) in a local store and serves them to the
entry page as a paginated table.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.cfg = cfg

			logger, err := logging.New(cfg.Log, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newSeedCmd(a),
		newClearCmd(a),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
