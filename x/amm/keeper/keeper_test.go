package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/aquifer-dex/aquifer/testutil/keeper"
	"github.com/aquifer-dex/aquifer/ledger/memledger"
	"github.com/aquifer-dex/aquifer/x/amm/keeper"
)

// seedLiquidity funds a fresh provider and makes the first deposit into the
// (tokenX, tokenY) pool, returning the minted shares.
func seedLiquidity(t *testing.T, k *keeper.Keeper, ledger *memledger.Ledger, tokenX, tokenY string, amountX, amountY int64) math.Int {
	keepertest.FundAccount(t, ledger, "lp", map[string]math.Int{
		tokenX: math.NewInt(amountX),
		tokenY: math.NewInt(amountY),
	})

	_, _, shares, err := k.AddLiquidity(context.Background(), "lp", tokenX, tokenY,
		math.NewInt(amountX), math.NewInt(amountY),
		math.ZeroInt(), math.ZeroInt(), "lp")
	require.NoError(t, err)
	return shares
}

// TestGetLiquidity_UnknownHolder tests that absent positions read as zero
func TestGetLiquidity_UnknownHolder(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)

	shares, err := k.GetLiquidity(1, "stranger")
	require.NoError(t, err)
	require.True(t, shares.IsZero())
}

// TestGetLiquidity_UnknownPool tests position lookup on a missing pool
func TestGetLiquidity_UnknownPool(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	_, err := k.GetLiquidity(7, "lp")
	require.Error(t, err)
}

// TestIterateLiquidity_Stop tests early termination of position iteration
func TestIterateLiquidity_Stop(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)

	keepertest.FundAccount(t, ledger, "lp2", map[string]math.Int{
		"usdc": math.NewInt(500),
		"wbtc": math.NewInt(500),
	})
	_, _, _, err := k.AddLiquidity(context.Background(), "lp2", "usdc", "wbtc",
		math.NewInt(500), math.NewInt(500), math.ZeroInt(), math.ZeroInt(), "lp2")
	require.NoError(t, err)

	visited := 0
	k.IterateLiquidity(1, func(string, math.Int) bool {
		visited++
		return true
	})
	require.Equal(t, 1, visited)
}
