package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// Invariant is a structural check over the whole registry. It returns a human
// readable report and whether the invariant is broken. A broken invariant is
// an engine defect: operations guard these conditions individually, so the
// runner exists to catch what slipped through, not to validate user input.
type Invariant func(ctx context.Context) (string, bool)

// AllInvariants runs every engine invariant and stops at the first break.
func (k *Keeper) AllInvariants(ctx context.Context) (string, bool) {
	for _, inv := range []Invariant{
		k.PoolStateInvariant,
		k.ShareAccountingInvariant,
		k.LedgerBackingInvariant,
	} {
		if report, broken := inv(ctx); broken {
			return report, true
		}
	}
	return "all amm invariants hold", false
}

// PoolStateInvariant checks structural pool state: canonical token ordering,
// non-negative reserves and shares, and reserve/share consistency.
func (k *Keeper) PoolStateInvariant(_ context.Context) (string, bool) {
	var (
		msg   string
		count int
	)
	for _, pool := range k.GetAllPools() {
		if err := pool.Validate(); err != nil {
			count++
			msg += fmt.Sprintf("pool %d: %v\n", pool.Id, err)
		}
	}
	return fmt.Sprintf("found %d pools with invalid state\n%s", count, msg), count != 0
}

// ShareAccountingInvariant checks that each pool's total share supply equals
// the sum of its per-holder positions.
func (k *Keeper) ShareAccountingInvariant(_ context.Context) (string, bool) {
	var (
		msg   string
		count int
	)
	for _, pool := range k.GetAllPools() {
		sum := math.ZeroInt()
		k.IterateLiquidity(pool.Id, func(_ string, shares math.Int) bool {
			sum = sum.Add(shares)
			return false
		})
		if !sum.Equal(pool.TotalShares) {
			count++
			msg += fmt.Sprintf("pool %d: position sum %s != total shares %s\n",
				pool.Id, sum, pool.TotalShares)
		}
	}
	return fmt.Sprintf("found %d pools with share accounting drift\n%s", count, msg), count != 0
}

// LedgerBackingInvariant checks that pool custody holds at least the summed
// reserves of every token. Multiple pools share the custody account, so the
// comparison is against per-token totals.
func (k *Keeper) LedgerBackingInvariant(ctx context.Context) (string, bool) {
	var (
		msg   string
		count int
	)

	required := make(map[string]math.Int)
	for _, pool := range k.GetAllPools() {
		for _, leg := range []struct {
			denom  string
			amount math.Int
		}{{pool.TokenA, pool.ReserveA}, {pool.TokenB, pool.ReserveB}} {
			if existing, ok := required[leg.denom]; ok {
				required[leg.denom] = existing.Add(leg.amount)
			} else {
				required[leg.denom] = leg.amount
			}
		}
	}

	for denom, amount := range required {
		balance := k.ledger.BalanceOf(ctx, denom, types.ModuleAccount)
		if balance.LT(amount) {
			count++
			msg += fmt.Sprintf("token %s: custody balance %s < total reserves %s\n",
				denom, balance, amount)
		}
	}
	return fmt.Sprintf("found %d tokens with unbacked reserves\n%s", count, msg), count != 0
}
