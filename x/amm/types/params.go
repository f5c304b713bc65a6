package types

import (
	"cosmossdk.io/math"
)

// Params holds the engine parameters. The swap fee is an integer ratio so that
// quote arithmetic is exact: amountInAfterFee = amountIn * FeeNumerator, and the
// constant-product denominator scales by FeeDenominator. 997/1000 is a 0.3% fee.
type Params struct {
	FeeNumerator   math.Int `json:"fee_numerator"`
	FeeDenominator math.Int `json:"fee_denominator"`

	// MinInitialShares is the smallest share supply a first deposit may create.
	// Guards against dust pools whose per-share value is degenerate.
	MinInitialShares math.Int `json:"min_initial_shares"`
}

// DefaultParams returns default parameters for the amm module
func DefaultParams() Params {
	return Params{
		FeeNumerator:     math.NewInt(997),
		FeeDenominator:   math.NewInt(1000),
		MinInitialShares: math.OneInt(),
	}
}

// Validate performs basic validation of parameters
func (p Params) Validate() error {
	if p.FeeNumerator.IsNil() || p.FeeDenominator.IsNil() {
		return ErrInvalidInput.Wrap("fee ratio cannot be nil")
	}
	if !p.FeeDenominator.IsPositive() {
		return ErrInvalidInput.Wrap("fee denominator must be positive")
	}
	if p.FeeNumerator.IsNegative() || p.FeeNumerator.GT(p.FeeDenominator) {
		return ErrInvalidInput.Wrapf("fee numerator %s must be within [0, %s]",
			p.FeeNumerator, p.FeeDenominator)
	}
	if p.MinInitialShares.IsNil() || !p.MinInitialShares.IsPositive() {
		return ErrInvalidInput.Wrap("minimum initial shares must be positive")
	}
	return nil
}
