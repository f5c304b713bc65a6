package types

import (
	"context"

	"cosmossdk.io/math"
)

// AssetLedger is the external fungible-asset ledger the engine settles against.
// The engine never implements token accounting itself; it holds reserves in the
// ModuleAccount and moves funds through this interface. Implementations must be
// safe for concurrent use.
type AssetLedger interface {
	// BalanceOf returns holder's balance of the given asset.
	BalanceOf(ctx context.Context, asset, holder string) math.Int

	// Transfer moves amount of asset from the caller-controlled account to another.
	Transfer(ctx context.Context, asset, from, to string, amount math.Int) error

	// Approve authorizes spender to move up to amount of owner's asset.
	Approve(ctx context.Context, asset, owner, spender string, amount math.Int) error

	// TransferFrom moves amount of asset from owner to recipient using an
	// allowance previously granted to spender.
	TransferFrom(ctx context.Context, asset, spender, from, to string, amount math.Int) error
}
