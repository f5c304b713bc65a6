package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer is the transactional surface of the engine: the router end users
// call. Implementations validate deadlines and slippage bounds before any
// ledger movement, and every call is atomic from the caller's perspective.
type MsgServer interface {
	AddLiquidity(ctx context.Context, msg *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(ctx context.Context, msg *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	SwapExactIn(ctx context.Context, msg *MsgSwapExactIn) (*MsgSwapExactInResponse, error)
}

// MsgAddLiquidityResponse reports the amounts actually deposited (in the
// caller's token order) and the shares minted.
type MsgAddLiquidityResponse struct {
	PoolId uint64   `json:"pool_id"`
	UsedA  math.Int `json:"used_a"`
	UsedB  math.Int `json:"used_b"`
	Shares math.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse reports the amounts withdrawn in the caller's
// token order.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwapExactInResponse reports the output amount paid to the recipient.
type MsgSwapExactInResponse struct {
	AmountOut math.Int `json:"amount_out"`
}
