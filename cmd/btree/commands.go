package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-btree/pkg/cli"
	"github.com/huynhanx03/go-btree/pkg/datastructs/btree"
	"github.com/huynhanx03/go-btree/pkg/logger"
	"github.com/huynhanx03/go-btree/pkg/settings"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootFlags struct {
	configPath string
	order      int
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "btree",
		Short:         "Interactive in-memory B+ tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			tree, err := btree.FromSettings[string, string](cfg.Tree, btree.WithLogger(log))
			if err != nil {
				return err
			}
			defer tree.Close()

			log.Info("btree session started", zap.Int("order", tree.Order()))
			return cli.NewCli(cmd.InOrStdin(), cmd.OutOrStdout(), tree, log).Start(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML config file")
	pf.IntVar(&flags.order, "order", 0, "branching factor, overrides the config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error; overrides the config file")

	cmd.AddCommand(newBenchCmd(&flags), newVersionCmd())
	return cmd
}

func newBenchCmd(flags *rootFlags) *cobra.Command {
	var (
		n    int
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Insert and delete pseudo-random keys, then validate the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd, *flags)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			order := cfg.Tree.Order
			if order == 0 {
				order = btree.DefaultOrder
			}
			res, err := cli.Bench(order, n, seed, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted=%d deleted=%d height=%d nodes=%d occupancy=%.1f%% elapsed=%s\n",
				res.Inserted, res.Deleted, res.Final.Height, res.Final.NumNodes, res.Final.Occupancy, res.Elapsed)
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 100000, "number of keys")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "btree %s (%s)\n", version, runtime.Version())
		},
	}
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, flags rootFlags) (settings.Config, *zap.Logger, error) {
	cfg := settings.Default()
	if flags.configPath != "" {
		loaded, err := settings.Load(flags.configPath)
		if err != nil {
			return cfg, nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("order") {
		cfg.Tree.Order = flags.order
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logger.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}
