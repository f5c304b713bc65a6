package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// calculateMintShares prices a deposit of (amountA, amountB) in liquidity
// shares. First deposits use the geometric mean floor(sqrt(a*b)) so the share
// supply is independent of the initial price; later deposits mint
// proportionally to the smaller relative contribution, so over-supplying one
// side cannot mint disproportionate shares. Floor division throughout.
func (k *Keeper) calculateMintShares(pool types.Pool, amountA, amountB math.Int) (math.Int, error) {
	if pool.IsEmpty() {
		product, err := SafeMul(amountA, amountB)
		if err != nil {
			return math.Int{}, err
		}
		shares, err := IntSqrt(product)
		if err != nil {
			return math.Int{}, err
		}
		if shares.IsZero() || shares.LT(k.params.MinInitialShares) {
			return math.Int{}, types.ErrInsufficientInitialLiquidity.Wrapf(
				"initial deposit (%s, %s) mints %s shares, below minimum %s",
				amountA, amountB, shares, k.params.MinInitialShares)
		}
		return shares, nil
	}

	sharesA, err := SafeMulDiv(amountA, pool.TotalShares, pool.ReserveA)
	if err != nil {
		return math.Int{}, err
	}
	sharesB, err := SafeMulDiv(amountB, pool.TotalShares, pool.ReserveB)
	if err != nil {
		return math.Int{}, err
	}
	shares := math.MinInt(sharesA, sharesB)
	if shares.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidityMinted.Wrapf(
			"deposit (%s, %s) too small relative to reserves (%s, %s)",
			amountA, amountB, pool.ReserveA, pool.ReserveB)
	}
	return shares, nil
}

// calculateBurnAmounts prices a share burn in pool tokens. Floor division: the
// rounding remainder stays with the pool, never the withdrawer.
func (k *Keeper) calculateBurnAmounts(pool types.Pool, shares math.Int) (math.Int, math.Int, error) {
	amountA, err := SafeMulDiv(shares, pool.ReserveA, pool.TotalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amountB, err := SafeMulDiv(shares, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountA.IsZero() || amountB.IsZero() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidityBurned.Wrapf(
			"burning %s shares yields (%s, %s)", shares, amountA, amountB)
	}
	return amountA, amountB, nil
}

// AddLiquidity deposits both sides of a pair and mints shares to recipient.
// Desired amounts are upper bounds; on a funded pool the deposit is matched to
// the current reserve ratio by shrinking one side, and the result is checked
// against the caller's min bounds before any ledger transfer happens. Amounts
// are given and returned in the caller's (tokenX, tokenY) order.
func (k *Keeper) AddLiquidity(ctx context.Context, provider, tokenX, tokenY string, desiredX, desiredY, minX, minY math.Int, recipient string) (math.Int, math.Int, math.Int, error) {
	zero := math.ZeroInt()

	pool, err := k.GetOrCreatePool(tokenX, tokenY)
	if err != nil {
		return zero, zero, zero, err
	}

	lock, err := k.poolLock(pool.Id)
	if err != nil {
		return zero, zero, zero, err
	}
	lock.Lock()
	defer lock.Unlock()

	// Reload inside the critical section; the copy taken before the lock may
	// be stale.
	pool, err = k.getPool(pool.Id)
	if err != nil {
		return zero, zero, zero, err
	}

	// Map caller order onto the canonical (tokenA, tokenB) ordering.
	desiredA, desiredB, minA, minB := desiredX, desiredY, minX, minY
	if tokenX != pool.TokenA {
		desiredA, desiredB = desiredY, desiredX
		minA, minB = minY, minX
	}

	usedA, usedB := desiredA, desiredB
	if !pool.IsEmpty() {
		usedA, usedB, err = k.matchToReserveRatio(pool, desiredA, desiredB)
		if err != nil {
			return zero, zero, zero, err
		}
	}

	if usedA.LT(minA) || usedB.LT(minB) {
		return zero, zero, zero, types.ErrSlippageExceeded.Wrapf(
			"matched deposit (%s, %s) below caller minimums (%s, %s)",
			usedA, usedB, minA, minB)
	}

	shares, err := k.calculateMintShares(pool, usedA, usedB)
	if err != nil {
		return zero, zero, zero, err
	}

	newReserveA, err := SafeAdd(pool.ReserveA, usedA)
	if err != nil {
		return zero, zero, zero, err
	}
	newReserveB, err := SafeAdd(pool.ReserveB, usedB)
	if err != nil {
		return zero, zero, zero, err
	}
	newTotalShares, err := SafeAdd(pool.TotalShares, shares)
	if err != nil {
		return zero, zero, zero, err
	}

	// All preconditions hold; now pull funds. The pool mutex stays held across
	// the transfers, so a ledger callback cannot interleave another operation
	// on this pool.
	if err := k.ledger.TransferFrom(ctx, pool.TokenA, types.ModuleAccount, provider, types.ModuleAccount, usedA); err != nil {
		return zero, zero, zero, types.ErrLedgerFailure.Wrapf("pull %s %s from %s: %v", usedA, pool.TokenA, provider, err)
	}
	if err := k.ledger.TransferFrom(ctx, pool.TokenB, types.ModuleAccount, provider, types.ModuleAccount, usedB); err != nil {
		// Undo the first pull so a failed deposit has no observable effect.
		if revertErr := k.ledger.Transfer(ctx, pool.TokenA, types.ModuleAccount, provider, usedA); revertErr != nil {
			k.logger.Error("failed to revert partial deposit",
				"pool_id", pool.Id, "provider", provider,
				"original_error", err, "revert_error", revertErr)
		}
		return zero, zero, zero, types.ErrLedgerFailure.Wrapf("pull %s %s from %s: %v", usedB, pool.TokenB, provider, err)
	}

	pool.ReserveA = newReserveA
	pool.ReserveB = newReserveB
	pool.TotalShares = newTotalShares
	k.setPool(pool)

	current, err := k.GetLiquidity(pool.Id, recipient)
	if err != nil {
		return zero, zero, zero, err
	}
	updated, err := SafeAdd(current, shares)
	if err != nil {
		return zero, zero, zero, err
	}
	k.setLiquidity(pool.Id, recipient, updated)

	k.emitEvent(types.EventTypeAddLiquidity,
		types.AttributeKeyPoolID, pool.Id,
		types.AttributeKeyProvider, provider,
		types.AttributeKeyRecipient, recipient,
		types.AttributeKeyAmountA, usedA.String(),
		types.AttributeKeyAmountB, usedB.String(),
		types.AttributeKeyShares, shares.String(),
	)
	k.metrics.ObserveLiquidityAdded(pool, usedA, usedB)

	if tokenX != pool.TokenA {
		return usedB, usedA, shares, nil
	}
	return usedA, usedB, shares, nil
}

// matchToReserveRatio shrinks one side of a desired deposit so the pair lands
// on the pool's current price ratio, holding the other side fixed.
func (k *Keeper) matchToReserveRatio(pool types.Pool, desiredA, desiredB math.Int) (math.Int, math.Int, error) {
	optimalB, err := SafeMulDiv(desiredA, pool.ReserveB, pool.ReserveA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if optimalB.LTE(desiredB) {
		return desiredA, optimalB, nil
	}
	optimalA, err := SafeMulDiv(desiredB, pool.ReserveA, pool.ReserveB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return optimalA, desiredB, nil
}

// RemoveLiquidity burns provider's shares and pays the proportional slice of
// both reserves to recipient. Amounts are returned in the caller's
// (tokenX, tokenY) order and checked against the min bounds before payout.
func (k *Keeper) RemoveLiquidity(ctx context.Context, provider, tokenX, tokenY string, shares, minX, minY math.Int, recipient string) (math.Int, math.Int, error) {
	zero := math.ZeroInt()

	if shares.IsNil() || !shares.IsPositive() {
		return zero, zero, types.ErrInvalidInput.Wrap("shares must be positive")
	}

	pool, err := k.GetPoolByTokens(tokenX, tokenY)
	if err != nil {
		return zero, zero, err
	}

	lock, err := k.poolLock(pool.Id)
	if err != nil {
		return zero, zero, err
	}
	lock.Lock()
	defer lock.Unlock()

	pool, err = k.getPool(pool.Id)
	if err != nil {
		return zero, zero, err
	}
	if pool.IsEmpty() {
		return zero, zero, types.ErrInsufficientLiquidity.Wrapf("pool %d has no liquidity", pool.Id)
	}

	held, err := k.GetLiquidity(pool.Id, provider)
	if err != nil {
		return zero, zero, err
	}
	if held.LT(shares) {
		return zero, zero, types.ErrInsufficientShares.Wrapf("have %s, need %s", held, shares)
	}

	amountA, amountB, err := k.calculateBurnAmounts(pool, shares)
	if err != nil {
		return zero, zero, err
	}

	minA, minB := minX, minY
	if tokenX != pool.TokenA {
		minA, minB = minY, minX
	}
	if amountA.LT(minA) || amountB.LT(minB) {
		return zero, zero, types.ErrSlippageExceeded.Wrapf(
			"withdrawal (%s, %s) below caller minimums (%s, %s)",
			amountA, amountB, minA, minB)
	}

	newReserveA, err := SafeSub(pool.ReserveA, amountA)
	if err != nil {
		return zero, zero, err
	}
	newReserveB, err := SafeSub(pool.ReserveB, amountB)
	if err != nil {
		return zero, zero, err
	}
	newTotalShares, err := SafeSub(pool.TotalShares, shares)
	if err != nil {
		return zero, zero, err
	}
	newHeld, err := SafeSub(held, shares)
	if err != nil {
		return zero, zero, err
	}

	// Commit the burn before paying out. The outbound transfers happen under
	// the pool mutex, so nothing can observe or interleave the window between
	// commit and payout; on payout failure the previous state is restored.
	prev := pool
	pool.ReserveA = newReserveA
	pool.ReserveB = newReserveB
	pool.TotalShares = newTotalShares
	k.setPool(pool)
	k.setLiquidity(pool.Id, provider, newHeld)

	if err := k.payOut(ctx, pool, recipient, amountA, amountB); err != nil {
		k.setPool(prev)
		k.setLiquidity(pool.Id, provider, held)
		return zero, zero, err
	}

	k.emitEvent(types.EventTypeRemoveLiquidity,
		types.AttributeKeyPoolID, pool.Id,
		types.AttributeKeyProvider, provider,
		types.AttributeKeyRecipient, recipient,
		types.AttributeKeyAmountA, amountA.String(),
		types.AttributeKeyAmountB, amountB.String(),
		types.AttributeKeyShares, shares.String(),
	)
	k.metrics.ObserveLiquidityRemoved(pool, amountA, amountB)

	if tokenX != pool.TokenA {
		return amountB, amountA, nil
	}
	return amountA, amountB, nil
}

// payOut sends both withdrawal legs from pool custody to recipient, undoing
// the first leg if the second fails.
func (k *Keeper) payOut(ctx context.Context, pool types.Pool, recipient string, amountA, amountB math.Int) error {
	if err := k.ledger.Transfer(ctx, pool.TokenA, types.ModuleAccount, recipient, amountA); err != nil {
		return types.ErrLedgerFailure.Wrapf("pay %s %s to %s: %v", amountA, pool.TokenA, recipient, err)
	}
	if err := k.ledger.Transfer(ctx, pool.TokenB, types.ModuleAccount, recipient, amountB); err != nil {
		if revertErr := k.ledger.Transfer(ctx, pool.TokenA, recipient, types.ModuleAccount, amountA); revertErr != nil {
			k.logger.Error("failed to revert partial withdrawal",
				"pool_id", pool.Id, "recipient", recipient,
				"original_error", err, "revert_error", revertErr)
		}
		return types.ErrLedgerFailure.Wrapf("pay %s %s to %s: %v", amountB, pool.TokenB, recipient, err)
	}
	return nil
}
