package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/aquifer-dex/aquifer/testutil/keeper"
	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// TestAddLiquidity_FirstDeposit tests geometric-mean share pricing on an
// empty pool
func TestAddLiquidity_FirstDeposit(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()

	keepertest.FundAccount(t, ledger, "lp", map[string]math.Int{
		"usdc": math.NewInt(1000),
		"wbtc": math.NewInt(1000),
	})

	usedA, usedB, shares, err := k.AddLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(1000), math.NewInt(1000), math.ZeroInt(), math.ZeroInt(), "lp")
	require.NoError(t, err)
	require.Equal(t, int64(1000), usedA.Int64())
	require.Equal(t, int64(1000), usedB.Int64())
	require.Equal(t, int64(1000), shares.Int64()) // floor(sqrt(1000*1000))

	pool, err := k.GetPool(1)
	require.NoError(t, err)
	require.Equal(t, int64(1000), pool.ReserveA.Int64())
	require.Equal(t, int64(1000), pool.ReserveB.Int64())
	require.Equal(t, int64(1000), pool.TotalShares.Int64())

	held, err := k.GetLiquidity(pool.Id, "lp")
	require.NoError(t, err)
	require.Equal(t, shares, held)

	// funds moved into pool custody
	require.True(t, ledger.BalanceOf(ctx, "usdc", "lp").IsZero())
	require.Equal(t, int64(1000), ledger.BalanceOf(ctx, "usdc", types.ModuleAccount).Int64())
}

// TestAddLiquidity_FirstDepositUneven tests sqrt share pricing on an
// asymmetric deposit
func TestAddLiquidity_FirstDepositUneven(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	shares := seedLiquidity(t, k, ledger, "usdc", "wbtc", 2000, 500)
	require.Equal(t, int64(1000), shares.Int64()) // floor(sqrt(2000*500))
}

// TestAddLiquidity_SqrtFlooring tests that fractional roots round down
func TestAddLiquidity_SqrtFlooring(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	shares := seedLiquidity(t, k, ledger, "usdc", "wbtc", 10, 5)
	require.Equal(t, int64(7), shares.Int64()) // floor(sqrt(50)) = 7
}

// TestAddLiquidity_ProportionalMint tests share pricing on a funded pool
func TestAddLiquidity_ProportionalMint(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)

	keepertest.FundAccount(t, ledger, "lp2", map[string]math.Int{
		"usdc": math.NewInt(500),
		"wbtc": math.NewInt(500),
	})
	usedA, usedB, shares, err := k.AddLiquidity(ctx, "lp2", "usdc", "wbtc",
		math.NewInt(500), math.NewInt(500), math.ZeroInt(), math.ZeroInt(), "lp2")
	require.NoError(t, err)
	require.Equal(t, int64(500), usedA.Int64())
	require.Equal(t, int64(500), usedB.Int64())
	require.Equal(t, int64(500), shares.Int64()) // 500 * 1000 / 1000

	pool, err := k.GetPool(1)
	require.NoError(t, err)
	require.Equal(t, int64(1500), pool.TotalShares.Int64())
}

// TestAddLiquidity_RatioMatching tests that an off-ratio deposit is shrunk to
// the pool price before any transfer
func TestAddLiquidity_RatioMatching(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 2000, 1000)

	keepertest.FundAccount(t, ledger, "lp2", map[string]math.Int{
		"usdc": math.NewInt(1000),
		"wbtc": math.NewInt(1000),
	})
	usedUSDC, usedWBTC, _, err := k.AddLiquidity(ctx, "lp2", "usdc", "wbtc",
		math.NewInt(1000), math.NewInt(1000), math.ZeroInt(), math.ZeroInt(), "lp2")
	require.NoError(t, err)
	require.Equal(t, int64(1000), usedUSDC.Int64())
	require.Equal(t, int64(500), usedWBTC.Int64()) // matched to 2:1 reserves

	// the unused half of wbtc stays with the provider
	require.Equal(t, int64(500), ledger.BalanceOf(ctx, "wbtc", "lp2").Int64())
}

// TestAddLiquidity_ReversedOrder tests that caller token order does not change
// the economics
func TestAddLiquidity_ReversedOrder(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 2000, 1000)

	keepertest.FundAccount(t, ledger, "lp2", map[string]math.Int{
		"usdc": math.NewInt(1000),
		"wbtc": math.NewInt(1000),
	})
	// ask in (wbtc, usdc) order; returns must come back in that order
	usedWBTC, usedUSDC, _, err := k.AddLiquidity(ctx, "lp2", "wbtc", "usdc",
		math.NewInt(1000), math.NewInt(1000), math.ZeroInt(), math.ZeroInt(), "lp2")
	require.NoError(t, err)
	require.Equal(t, int64(500), usedWBTC.Int64())
	require.Equal(t, int64(1000), usedUSDC.Int64())
}

// TestAddLiquidity_SlippageBound tests rejection when the matched deposit
// falls under the caller's minimums
func TestAddLiquidity_SlippageBound(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 2000, 1000)

	keepertest.FundAccount(t, ledger, "lp2", map[string]math.Int{
		"usdc": math.NewInt(1000),
		"wbtc": math.NewInt(1000),
	})
	// matched wbtc side will be 500, below the min of 600
	_, _, _, err := k.AddLiquidity(ctx, "lp2", "usdc", "wbtc",
		math.NewInt(1000), math.NewInt(1000), math.ZeroInt(), math.NewInt(600), "lp2")
	require.ErrorIs(t, err, types.ErrSlippageExceeded)

	// nothing was transferred
	require.Equal(t, int64(1000), ledger.BalanceOf(ctx, "usdc", "lp2").Int64())
	require.Equal(t, int64(1000), ledger.BalanceOf(ctx, "wbtc", "lp2").Int64())
}

// TestAddLiquidity_DustFirstDeposit tests rejection of a first deposit whose
// share supply would round to zero
func TestAddLiquidity_DustFirstDeposit(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()

	keepertest.FundAccount(t, ledger, "lp", map[string]math.Int{
		"usdc": math.NewInt(1),
		"wbtc": math.NewInt(1),
	})
	// sqrt(1*1) = 1 passes the default minimum of one share
	_, _, shares, err := k.AddLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(1), math.NewInt(1), math.ZeroInt(), math.ZeroInt(), "lp")
	require.NoError(t, err)
	require.Equal(t, int64(1), shares.Int64())
}

// TestAddLiquidity_TinyProportionalDeposit tests rejection when a deposit is
// too small to mint a single share
func TestAddLiquidity_TinyProportionalDeposit(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000000, 1000)

	keepertest.FundAccount(t, ledger, "lp2", map[string]math.Int{
		"usdc": math.NewInt(1),
		"wbtc": math.NewInt(1),
	})
	// 1 usdc against a 1M reserve matches to zero wbtc and mints zero shares
	_, _, _, err := k.AddLiquidity(ctx, "lp2", "usdc", "wbtc",
		math.NewInt(1), math.NewInt(1), math.ZeroInt(), math.ZeroInt(), "lp2")
	require.Error(t, err)
}

// TestAddLiquidity_InsufficientFunds tests that a failed pull leaves no trace
func TestAddLiquidity_InsufficientFunds(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()

	// fund only one side
	keepertest.FundAccount(t, ledger, "lp", map[string]math.Int{
		"usdc": math.NewInt(1000),
	})
	_, _, _, err := k.AddLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(1000), math.NewInt(1000), math.ZeroInt(), math.ZeroInt(), "lp")
	require.ErrorIs(t, err, types.ErrLedgerFailure)

	// the usdc pull was reverted
	require.Equal(t, int64(1000), ledger.BalanceOf(ctx, "usdc", "lp").Int64())
	require.True(t, ledger.BalanceOf(ctx, "usdc", types.ModuleAccount).IsZero())

	pool, err := k.GetPool(1)
	require.NoError(t, err)
	require.True(t, pool.IsEmpty())
}

// TestRemoveLiquidity_Proportional tests a partial withdrawal
func TestRemoveLiquidity_Proportional(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	shares := seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)
	require.Equal(t, int64(1000), shares.Int64())

	amountA, amountB, err := k.RemoveLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(500), math.ZeroInt(), math.ZeroInt(), "lp")
	require.NoError(t, err)
	require.Equal(t, int64(500), amountA.Int64())
	require.Equal(t, int64(500), amountB.Int64())

	pool, err := k.GetPool(1)
	require.NoError(t, err)
	require.Equal(t, int64(500), pool.ReserveA.Int64())
	require.Equal(t, int64(500), pool.ReserveB.Int64())
	require.Equal(t, int64(500), pool.TotalShares.Int64())

	require.Equal(t, int64(500), ledger.BalanceOf(ctx, "usdc", "lp").Int64())
	require.Equal(t, int64(500), ledger.BalanceOf(ctx, "wbtc", "lp").Int64())
}

// TestRemoveLiquidity_FullDrain tests burning the entire share supply
func TestRemoveLiquidity_FullDrain(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)

	_, _, err := k.RemoveLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(1000), math.ZeroInt(), math.ZeroInt(), "lp")
	require.NoError(t, err)

	pool, err := k.GetPool(1)
	require.NoError(t, err)
	require.True(t, pool.IsEmpty())
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())

	held, err := k.GetLiquidity(pool.Id, "lp")
	require.NoError(t, err)
	require.True(t, held.IsZero())
}

// TestRemoveLiquidity_FloorFavorsPool tests that withdrawal rounding stays
// with the pool
func TestRemoveLiquidity_FloorFavorsPool(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)

	// 333 shares of 1000 over reserves of 1000: floor(333*1000/1000) = 333
	amountA, amountB, err := k.RemoveLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(333), math.ZeroInt(), math.ZeroInt(), "lp")
	require.NoError(t, err)
	require.Equal(t, int64(333), amountA.Int64())
	require.Equal(t, int64(333), amountB.Int64())

	// now 667 shares over (667, 667): floor(100*667/667) = 100, exact again,
	// so check a genuinely fractional case against uneven reserves
	k2, ledger2 := keepertest.AMMKeeper(t)
	seedLiquidity(t, k2, ledger2, "usdc", "wbtc", 1000, 10)
	// 100 shares of sqrt(10000)=100... total shares are 100, burn 33:
	// usdc: floor(33*1000/100) = 330, wbtc: floor(33*10/100) = 3
	amountA, amountB, err = k2.RemoveLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(33), math.ZeroInt(), math.ZeroInt(), "lp")
	require.NoError(t, err)
	require.Equal(t, int64(330), amountA.Int64())
	require.Equal(t, int64(3), amountB.Int64())

	pool, err := k2.GetPool(1)
	require.NoError(t, err)
	require.Equal(t, int64(670), pool.ReserveA.Int64())
	require.Equal(t, int64(7), pool.ReserveB.Int64())
}

// TestRemoveLiquidity_InsufficientShares tests burning more than held
func TestRemoveLiquidity_InsufficientShares(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)

	_, _, err := k.RemoveLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(1001), math.ZeroInt(), math.ZeroInt(), "lp")
	require.ErrorIs(t, err, types.ErrInsufficientShares)
}

// TestRemoveLiquidity_SlippageBound tests min-amount enforcement before payout
func TestRemoveLiquidity_SlippageBound(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)

	_, _, err := k.RemoveLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(500), math.NewInt(501), math.ZeroInt(), "lp")
	require.ErrorIs(t, err, types.ErrSlippageExceeded)

	// state untouched
	pool, err := k.GetPool(1)
	require.NoError(t, err)
	require.Equal(t, int64(1000), pool.TotalShares.Int64())
	require.True(t, ledger.BalanceOf(ctx, "usdc", "lp").IsZero())
}

// TestRemoveLiquidity_DustBurn tests rejection when a burn yields zero on
// either side
func TestRemoveLiquidity_DustBurn(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 10)

	// 1 share of 100 over a 10-unit reserve: floor(1*10/100) = 0
	_, _, err := k.RemoveLiquidity(ctx, "lp", "usdc", "wbtc",
		math.NewInt(1), math.ZeroInt(), math.ZeroInt(), "lp")
	require.ErrorIs(t, err, types.ErrInsufficientLiquidityBurned)
}

// TestRemoveLiquidity_UnknownPool tests withdrawal from a missing pair
func TestRemoveLiquidity_UnknownPool(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)

	_, _, err := k.RemoveLiquidity(context.Background(), "lp", "usdc", "wbtc",
		math.NewInt(1), math.ZeroInt(), math.ZeroInt(), "lp")
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

// TestLiquidity_DepositWithdrawNoProfit tests that a deposit followed by a
// full withdrawal never returns more than was put in
func TestLiquidity_DepositWithdrawNoProfit(t *testing.T) {
	k, ledger := keepertest.AMMKeeper(t)
	ctx := context.Background()
	seedLiquidity(t, k, ledger, "usdc", "wbtc", 1000, 1000)

	keepertest.FundAccount(t, ledger, "lp2", map[string]math.Int{
		"usdc": math.NewInt(777),
		"wbtc": math.NewInt(777),
	})
	usedA, usedB, shares, err := k.AddLiquidity(ctx, "lp2", "usdc", "wbtc",
		math.NewInt(777), math.NewInt(777), math.ZeroInt(), math.ZeroInt(), "lp2")
	require.NoError(t, err)

	amountA, amountB, err := k.RemoveLiquidity(ctx, "lp2", "usdc", "wbtc",
		shares, math.ZeroInt(), math.ZeroInt(), "lp2")
	require.NoError(t, err)
	require.True(t, amountA.LTE(usedA))
	require.True(t, amountB.LTE(usedB))
}
