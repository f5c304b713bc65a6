package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/aquifer-dex/aquifer/ledger/memledger"
	"github.com/aquifer-dex/aquifer/x/amm/keeper"
	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// AMMKeeper creates a test keeper backed by a fresh in-memory ledger.
func AMMKeeper(t testing.TB) (*keeper.Keeper, *memledger.Ledger) {
	ledger := memledger.New()
	k, err := keeper.NewKeeper(ledger, types.DefaultParams(), log.NewNopLogger())
	require.NoError(t, err)
	return k, ledger
}

// FundAccount mints balances for holder and approves the pool custody account
// to pull them, mirroring the approve-then-deposit flow end users follow.
func FundAccount(t testing.TB, ledger *memledger.Ledger, holder string, assets map[string]math.Int) {
	ctx := context.Background()
	for asset, amount := range assets {
		require.NoError(t, ledger.Mint(asset, holder, amount))
		require.NoError(t, ledger.Approve(ctx, asset, holder, types.ModuleAccount, amount))
	}
}
