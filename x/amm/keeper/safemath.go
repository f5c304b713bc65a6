package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// Overflow-safe arithmetic for reserve and share accounting. math.Int panics
// past 2^256; these helpers bound every intermediate result and fail instead
// of wrapping or aborting.

var maxInt = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.CmpAbs(maxInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("addition %s + %s exceeds maximum value", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a, failing on underflow below zero
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrOverflow.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// SafeMul multiplies two math.Int values with overflow checking
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.CmpAbs(maxInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("multiplication %s * %s exceeds maximum value", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeQuo divides a by b with a division-by-zero check. Floor division; the
// remainder is discarded (and in pool accounting stays with the pool).
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	return a.Quo(b), nil
}

// SafeMulDiv computes floor(a * b / c) with overflow protection on the
// intermediate product. The workhorse of proportional share math.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.CmpAbs(maxInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("overflow in %s * %s", a, b)
	}
	return math.NewIntFromBigInt(intermediate.Quo(intermediate, c.BigInt())), nil
}

// IntSqrt returns floor(sqrt(a)). Exact integer square root, not a decimal
// approximation, so first-deposit share supplies are reproducible.
func IntSqrt(a math.Int) (math.Int, error) {
	if a.IsNegative() {
		return math.Int{}, types.ErrOverflow.Wrapf("square root of negative value %s", a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(a.BigInt())), nil
}
