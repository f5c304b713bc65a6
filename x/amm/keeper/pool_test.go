package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/aquifer-dex/aquifer/testutil/keeper"
	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// TestGetOrCreatePool_CanonicalOrdering tests that pools store tokens sorted
func TestGetOrCreatePool_CanonicalOrdering(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	pool, err := k.GetOrCreatePool("wbtc", "usdc")
	require.NoError(t, err)
	require.Equal(t, "usdc", pool.TokenA)
	require.Equal(t, "wbtc", pool.TokenB)
	require.Equal(t, uint64(1), pool.Id)
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())
	require.True(t, pool.TotalShares.IsZero())
}

// TestGetOrCreatePool_Idempotent tests that both argument orders and repeated
// calls resolve to the same pool
func TestGetOrCreatePool_Idempotent(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	first, err := k.GetOrCreatePool("usdc", "wbtc")
	require.NoError(t, err)

	second, err := k.GetOrCreatePool("wbtc", "usdc")
	require.NoError(t, err)
	require.Equal(t, first.Id, second.Id)

	third, err := k.GetOrCreatePool("usdc", "wbtc")
	require.NoError(t, err)
	require.Equal(t, first.Id, third.Id)

	require.Equal(t, 1, k.PoolCount())
}

// TestGetOrCreatePool_IdenticalTokens tests rejection of a self-pair
func TestGetOrCreatePool_IdenticalTokens(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	_, err := k.GetOrCreatePool("usdc", "usdc")
	require.ErrorIs(t, err, types.ErrIdenticalTokens)
}

// TestGetOrCreatePool_EmptyDenom tests rejection of empty denominations
func TestGetOrCreatePool_EmptyDenom(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	_, err := k.GetOrCreatePool("", "usdc")
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = k.GetOrCreatePool("usdc", "")
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

// TestGetPool_NotFound tests lookup of a non-existent pool ID
func TestGetPool_NotFound(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	_, err := k.GetPool(99999)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

// TestGetPoolByTokens_NeverCreates tests that lookup is pure
func TestGetPoolByTokens_NeverCreates(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	_, err := k.GetPoolByTokens("usdc", "wbtc")
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	require.Equal(t, 0, k.PoolCount())
}

// TestGetReserves_CallerOrder tests that reserves come back in ask order
func TestGetReserves_CallerOrder(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 4000, 1000)

	reserveUSDC, reserveWBTC, err := k.GetReserves("usdc", "wbtc")
	require.NoError(t, err)
	require.Equal(t, int64(4000), reserveUSDC.Int64())
	require.Equal(t, int64(1000), reserveWBTC.Int64())

	reserveWBTC, reserveUSDC, err = k.GetReserves("wbtc", "usdc")
	require.NoError(t, err)
	require.Equal(t, int64(1000), reserveWBTC.Int64())
	require.Equal(t, int64(4000), reserveUSDC.Int64())
}

// TestGetAllPools_OrderedByID tests registry enumeration
func TestGetAllPools_OrderedByID(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	_, err := k.GetOrCreatePool("usdc", "wbtc")
	require.NoError(t, err)
	_, err = k.GetOrCreatePool("atom", "usdc")
	require.NoError(t, err)
	_, err = k.GetOrCreatePool("atom", "wbtc")
	require.NoError(t, err)

	pools := k.GetAllPools()
	require.Len(t, pools, 3)
	for i, pool := range pools {
		require.Equal(t, uint64(i+1), pool.Id)
	}
}
