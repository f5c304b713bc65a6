package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aquifer-dex/aquifer/api"
	"github.com/aquifer-dex/aquifer/ledger/memledger"
	"github.com/aquifer-dex/aquifer/x/amm/keeper"
	"github.com/aquifer-dex/aquifer/x/amm/types"
)

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the AMM engine and HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStart(cmd)
		},
	}

	cmd.Flags().String("listen-addr", "0.0.0.0:8080", "HTTP listen address")
	cmd.Flags().Duration("shutdown-timeout", 10*time.Second, "graceful shutdown drain timeout")
	cmd.Flags().Int64("fee-numerator", 997, "swap fee numerator")
	cmd.Flags().Int64("fee-denominator", 1000, "swap fee denominator")
	cmd.Flags().StringSlice("seed", nil, "seed ledger balances, holder:asset:amount (repeatable)")
	return cmd
}

func runStart(cmd *cobra.Command) error {
	v := viper.GetViper()

	logger, err := newLogger(v.GetString("log-level"))
	if err != nil {
		return err
	}

	params := types.DefaultParams()
	params.FeeNumerator = math.NewInt(v.GetInt64("fee-numerator"))
	params.FeeDenominator = math.NewInt(v.GetInt64("fee-denominator"))
	if err := params.Validate(); err != nil {
		return err
	}

	ledger := memledger.New()
	if err := seedLedger(ledger, v.GetStringSlice("seed")); err != nil {
		return err
	}

	k, err := keeper.NewKeeper(ledger, params, logger)
	if err != nil {
		return err
	}

	cfg := api.DefaultConfig()
	cfg.ListenAddr = v.GetString("listen-addr")
	cfg.ShutdownTimeout = v.GetDuration("shutdown-timeout")
	server := api.NewServer(k, cfg, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting aquifer",
		"listen_addr", cfg.ListenAddr,
		"fee", fmt.Sprintf("%s/%s", params.FeeNumerator, params.FeeDenominator),
	)
	return server.Start(ctx)
}

func newLogger(level string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewLogger(os.Stderr, log.LevelOption(lvl)), nil
}

// seedLedger mints demo balances from holder:asset:amount entries. Each holder
// also pre-approves the pool custody account so deposits work immediately.
func seedLedger(ledger *memledger.Ledger, entries []string) error {
	ctx := context.Background()
	for _, entry := range entries {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return fmt.Errorf("malformed seed %q, want holder:asset:amount", entry)
		}
		holder, asset := parts[0], parts[1]
		amount, ok := math.NewIntFromString(parts[2])
		if !ok {
			return fmt.Errorf("malformed seed amount %q", parts[2])
		}
		if err := ledger.Mint(asset, holder, amount); err != nil {
			return err
		}
		if err := ledger.Approve(ctx, asset, holder, types.ModuleAccount, amount); err != nil {
			return err
		}
	}
	return nil
}
