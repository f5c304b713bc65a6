package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// SwapPathLength is the only supported hop count. The path stays a sequence on
// the wire so the surface does not change if multi-hop routing ever lands, but
// the engine executes single-pool swaps only.
const SwapPathLength = 2

// MsgSwapExactIn is a request to swap an exact input amount along Path for at
// least MinAmountOut of the output token.
type MsgSwapExactIn struct {
	Trader       string   `json:"trader"`
	AmountIn     math.Int `json:"amount_in"`
	MinAmountOut math.Int `json:"min_amount_out"`
	Path         []string `json:"path"`
	Recipient    string   `json:"recipient"`
	Deadline     int64    `json:"deadline"`
}

// NewMsgSwapExactIn creates a new MsgSwapExactIn instance
func NewMsgSwapExactIn(trader string, amountIn, minAmountOut math.Int, path []string, recipient string, deadline int64) *MsgSwapExactIn {
	return &MsgSwapExactIn{
		Trader:       trader,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Path:         path,
		Recipient:    recipient,
		Deadline:     deadline,
	}
}

// TokenIn returns the input token of the path. Callers must run ValidateBasic first.
func (msg MsgSwapExactIn) TokenIn() string { return msg.Path[0] }

// TokenOut returns the output token of the path. Callers must run ValidateBasic first.
func (msg MsgSwapExactIn) TokenOut() string { return msg.Path[len(msg.Path)-1] }

// ValidateBasic performs stateless validation of the request
func (msg MsgSwapExactIn) ValidateBasic() error {
	if msg.Trader == "" {
		return sdkerrors.Wrap(ErrInvalidAddress, "trader address cannot be empty")
	}
	if msg.Recipient == "" {
		return sdkerrors.Wrap(ErrInvalidAddress, "recipient address cannot be empty")
	}
	if len(msg.Path) != SwapPathLength {
		return sdkerrors.Wrapf(ErrInvalidSwapPath, "path must have exactly %d tokens, got %d",
			SwapPathLength, len(msg.Path))
	}
	if msg.Path[0] == "" || msg.Path[1] == "" {
		return sdkerrors.Wrap(ErrInvalidSwapPath, "path tokens cannot be empty")
	}
	if msg.Path[0] == msg.Path[1] {
		return sdkerrors.Wrapf(ErrIdenticalTokens, "cannot swap %s for itself", msg.Path[0])
	}
	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return sdkerrors.Wrap(ErrInsufficientInputAmount, "input amount must be positive")
	}
	if msg.MinAmountOut.IsNil() || msg.MinAmountOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum output amount cannot be negative")
	}
	if msg.Deadline <= 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "deadline must be a positive unix timestamp")
	}
	return nil
}
