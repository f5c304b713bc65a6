package keeper

import (
	"context"
	"math/big"
	"time"

	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// CalculateSwapOutput prices an exact-input swap against the given reserves
// using the constant-product formula with the engine's fixed fee ratio:
//
//	amountInAfterFee = amountIn * feeNumerator
//	amountOut = amountInAfterFee * reserveOut / (reserveIn * feeDenominator + amountInAfterFee)
//
// All integer floor division. Pure: no state is read beyond the parameters and
// none is written, so it doubles as the price-preview query.
func (k *Keeper) CalculateSwapOutput(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientInputAmount.Wrap("input amount must be positive")
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || reserveIn.IsZero() || reserveOut.IsZero() {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}

	amountInAfterFee, err := SafeMul(amountIn, k.params.FeeNumerator)
	if err != nil {
		return math.ZeroInt(), err
	}
	scaledReserveIn, err := SafeMul(reserveIn, k.params.FeeDenominator)
	if err != nil {
		return math.ZeroInt(), err
	}
	denominator, err := SafeAdd(scaledReserveIn, amountInAfterFee)
	if err != nil {
		return math.ZeroInt(), err
	}
	amountOut, err := SafeMulDiv(amountInAfterFee, reserveOut, denominator)
	if err != nil {
		return math.ZeroInt(), err
	}

	if amountOut.IsZero() {
		return math.ZeroInt(), types.ErrInsufficientOutputAmount.Wrapf(
			"input %s yields zero output against reserves (%s, %s)", amountIn, reserveIn, reserveOut)
	}
	if amountOut.GTE(reserveOut) {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf("output %s >= reserve %s", amountOut, reserveOut)
	}
	return amountOut, nil
}

// ExecuteSwap swaps an exact amountIn of tokenIn for tokenOut, paying the
// output to recipient. The full input amount is added to the input reserve so
// the fee accrues to the pool, and the constant product is re-verified after
// the reserve update; a decrease is an engine defect, not a user error.
func (k *Keeper) ExecuteSwap(ctx context.Context, trader, tokenIn, tokenOut string, amountIn, minAmountOut math.Int, recipient string) (math.Int, error) {
	zero := math.ZeroInt()

	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	if amountIn.IsNil() || !amountIn.IsPositive() {
		return zero, types.ErrInsufficientInputAmount.Wrap("input amount must be positive")
	}
	if tokenIn == tokenOut {
		return zero, types.ErrIdenticalTokens.Wrapf("cannot swap %s for itself", tokenIn)
	}

	pool, err := k.GetPoolByTokens(tokenIn, tokenOut)
	if err != nil {
		return zero, err
	}

	lock, err := k.poolLock(pool.Id)
	if err != nil {
		return zero, err
	}
	lock.Lock()
	defer lock.Unlock()

	pool, err = k.getPool(pool.Id)
	if err != nil {
		return zero, err
	}

	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	inputIsTokenA := tokenIn == pool.TokenA
	if !inputIsTokenA {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}

	amountOut, err := k.CalculateSwapOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		k.metrics.ObserveSwapFailed(pool, tokenIn, tokenOut)
		return zero, err
	}

	if amountOut.LT(minAmountOut) {
		k.metrics.ObserveSwapFailed(pool, tokenIn, tokenOut)
		return zero, types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, amountOut)
	}

	newReserveIn, err := SafeAdd(reserveIn, amountIn)
	if err != nil {
		return zero, err
	}
	newReserveOut, err := SafeSub(reserveOut, amountOut)
	if err != nil {
		return zero, err
	}

	// The product must never decrease across a swap. With a nonzero fee it
	// strictly grows; equality is only reachable at fee zero. Products of legal
	// reserves can exceed 256 bits, so the comparison is done unbounded.
	oldK := pool.K()
	newK := new(big.Int).Mul(newReserveIn.BigInt(), newReserveOut.BigInt())
	if newK.Cmp(oldK) < 0 {
		return zero, types.ErrInvariantViolation.Wrapf(
			"constant product decreased: old_k=%s, new_k=%s", oldK, newK)
	}

	// Preconditions all hold; pull the input leg under the pool mutex.
	if err := k.ledger.TransferFrom(ctx, tokenIn, types.ModuleAccount, trader, types.ModuleAccount, amountIn); err != nil {
		k.metrics.ObserveSwapFailed(pool, tokenIn, tokenOut)
		return zero, types.ErrLedgerFailure.Wrapf("pull %s %s from %s: %v", amountIn, tokenIn, trader, err)
	}

	prev := pool
	if inputIsTokenA {
		pool.ReserveA = newReserveIn
		pool.ReserveB = newReserveOut
	} else {
		pool.ReserveB = newReserveIn
		pool.ReserveA = newReserveOut
	}
	k.setPool(pool)

	if err := k.ledger.Transfer(ctx, tokenOut, types.ModuleAccount, recipient, amountOut); err != nil {
		// Roll the trade back: restore reserves and refund the input pull.
		k.setPool(prev)
		if refundErr := k.ledger.Transfer(ctx, tokenIn, types.ModuleAccount, trader, amountIn); refundErr != nil {
			k.logger.Error("failed to refund input after payout failure",
				"pool_id", pool.Id, "trader", trader,
				"original_error", err, "refund_error", refundErr)
		}
		k.metrics.ObserveSwapFailed(pool, tokenIn, tokenOut)
		return zero, types.ErrLedgerFailure.Wrapf("pay %s %s to %s: %v", amountOut, tokenOut, recipient, err)
	}

	k.emitEvent(types.EventTypeSwap,
		types.AttributeKeyPoolID, pool.Id,
		types.AttributeKeyTrader, trader,
		types.AttributeKeyRecipient, recipient,
		types.AttributeKeyTokenIn, tokenIn,
		types.AttributeKeyTokenOut, tokenOut,
		types.AttributeKeyAmountIn, amountIn.String(),
		types.AttributeKeyAmountOut, amountOut.String(),
	)
	k.metrics.ObserveSwapExecuted(pool, tokenIn, tokenOut, amountIn)

	return amountOut, nil
}

// SimulateSwap quotes a swap against current reserves without executing it.
func (k *Keeper) SimulateSwap(tokenIn, tokenOut string, amountIn math.Int) (math.Int, error) {
	if tokenIn == tokenOut {
		return math.ZeroInt(), types.ErrIdenticalTokens.Wrapf("cannot swap %s for itself", tokenIn)
	}
	reserveIn, reserveOut, err := k.GetReserves(tokenIn, tokenOut)
	if err != nil {
		return math.ZeroInt(), err
	}
	return k.CalculateSwapOutput(amountIn, reserveIn, reserveOut)
}

// GetSpotPrice returns the instantaneous price of tokenOut denominated in
// tokenIn, i.e. reserveOut / reserveIn, without fee.
func (k *Keeper) GetSpotPrice(tokenIn, tokenOut string) (math.LegacyDec, error) {
	reserveIn, reserveOut, err := k.GetReserves(tokenIn, tokenOut)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.LegacyZeroDec(), types.ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}
	return math.LegacyNewDecFromInt(reserveOut).Quo(math.LegacyNewDecFromInt(reserveIn)), nil
}
