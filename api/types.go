package api

import (
	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AddLiquidityRequest mirrors MsgAddLiquidity with string-encoded amounts.
type AddLiquidityRequest struct {
	Provider  string `json:"provider" binding:"required"`
	TokenA    string `json:"token_a" binding:"required"`
	TokenB    string `json:"token_b" binding:"required"`
	DesiredA  string `json:"desired_a" binding:"required"`
	DesiredB  string `json:"desired_b" binding:"required"`
	MinA      string `json:"min_a"`
	MinB      string `json:"min_b"`
	Recipient string `json:"recipient"`
	Deadline  int64  `json:"deadline" binding:"required"`
}

// RemoveLiquidityRequest mirrors MsgRemoveLiquidity.
type RemoveLiquidityRequest struct {
	Provider  string `json:"provider" binding:"required"`
	TokenA    string `json:"token_a" binding:"required"`
	TokenB    string `json:"token_b" binding:"required"`
	Shares    string `json:"shares" binding:"required"`
	MinA      string `json:"min_a"`
	MinB      string `json:"min_b"`
	Recipient string `json:"recipient"`
	Deadline  int64  `json:"deadline" binding:"required"`
}

// SwapRequest mirrors MsgSwapExactIn.
type SwapRequest struct {
	Trader       string   `json:"trader" binding:"required"`
	AmountIn     string   `json:"amount_in" binding:"required"`
	MinAmountOut string   `json:"min_amount_out"`
	Path         []string `json:"path" binding:"required"`
	Recipient    string   `json:"recipient"`
	Deadline     int64    `json:"deadline" binding:"required"`
}

// PoolResponse is the external view of a pool
type PoolResponse struct {
	Id          uint64 `json:"id"`
	TokenA      string `json:"token_a"`
	TokenB      string `json:"token_b"`
	ReserveA    string `json:"reserve_a"`
	ReserveB    string `json:"reserve_b"`
	TotalShares string `json:"total_shares"`
}

func newPoolResponse(pool types.Pool) PoolResponse {
	return PoolResponse{
		Id:          pool.Id,
		TokenA:      pool.TokenA,
		TokenB:      pool.TokenB,
		ReserveA:    pool.ReserveA.String(),
		ReserveB:    pool.ReserveB.String(),
		TotalShares: pool.TotalShares.String(),
	}
}

// parseAmount converts a decimal string to math.Int. Empty strings become
// zero so optional minimum bounds can be omitted.
func parseAmount(s string) (math.Int, bool) {
	if s == "" {
		return math.ZeroInt(), true
	}
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, false
	}
	return amount, true
}
