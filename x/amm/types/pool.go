package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// Pool is the reserve ledger for one unordered token pair. TokenA sorts
// strictly before TokenB lexicographically; that ordering is fixed at creation
// and gives each pair exactly one canonical pool.
type Pool struct {
	Id          uint64   `json:"id"`
	TokenA      string   `json:"token_a"`
	TokenB      string   `json:"token_b"`
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`
}

// K returns the constant product reserveA * reserveB. The product of two
// legal reserves can exceed 256 bits, so it is unbounded.
func (p Pool) K() *big.Int {
	return new(big.Int).Mul(p.ReserveA.BigInt(), p.ReserveB.BigInt())
}

// IsEmpty reports whether the pool has never been funded (or was fully drained).
func (p Pool) IsEmpty() bool {
	return p.TotalShares.IsZero()
}

// Validate checks structural pool state, not economic invariants.
func (p Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolState.Wrap("pool id cannot be zero")
	}
	if p.TokenA == "" || p.TokenB == "" {
		return ErrInvalidPoolState.Wrap("token denominations cannot be empty")
	}
	if p.TokenA == p.TokenB {
		return ErrInvalidPoolState.Wrapf("token_a == token_b (%s)", p.TokenA)
	}
	if p.TokenA > p.TokenB {
		return ErrInvalidPoolState.Wrapf("tokens out of canonical order: %s > %s", p.TokenA, p.TokenB)
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalShares.IsNil() {
		return ErrInvalidPoolState.Wrap("reserves and shares cannot be nil")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() || p.TotalShares.IsNegative() {
		return ErrInvalidPoolState.Wrap("reserves and shares cannot be negative")
	}
	// A funded pool must have both reserves; a share supply over an empty side
	// means accounting is corrupted.
	if p.TotalShares.IsPositive() && (p.ReserveA.IsZero() || p.ReserveB.IsZero()) {
		return ErrInvalidPoolState.Wrap("pool has shares but a zero reserve")
	}
	if p.TotalShares.IsZero() && (p.ReserveA.IsPositive() || p.ReserveB.IsPositive()) {
		return ErrInvalidPoolState.Wrap("pool has reserves but zero shares")
	}
	return nil
}

// OrderTokens returns the canonical (tokenA, tokenB) ordering for a pair.
func OrderTokens(tokenX, tokenY string) (string, string) {
	if tokenX > tokenY {
		return tokenY, tokenX
	}
	return tokenX, tokenY
}
