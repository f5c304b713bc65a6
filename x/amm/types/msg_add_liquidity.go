package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// MsgAddLiquidity is a request to deposit both sides of a pair. DesiredA/B are
// upper bounds, MinA/B are the caller's slippage bounds on the amounts actually
// used, and Deadline is a unix timestamp after which the request must be
// rejected rather than executed at a stale price.
type MsgAddLiquidity struct {
	Provider  string   `json:"provider"`
	TokenA    string   `json:"token_a"`
	TokenB    string   `json:"token_b"`
	DesiredA  math.Int `json:"desired_a"`
	DesiredB  math.Int `json:"desired_b"`
	MinA      math.Int `json:"min_a"`
	MinB      math.Int `json:"min_b"`
	Recipient string   `json:"recipient"`
	Deadline  int64    `json:"deadline"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(provider, tokenA, tokenB string, desiredA, desiredB, minA, minB math.Int, recipient string, deadline int64) *MsgAddLiquidity {
	return &MsgAddLiquidity{
		Provider:  provider,
		TokenA:    tokenA,
		TokenB:    tokenB,
		DesiredA:  desiredA,
		DesiredB:  desiredB,
		MinA:      minA,
		MinB:      minB,
		Recipient: recipient,
		Deadline:  deadline,
	}
}

// ValidateBasic performs stateless validation of the request
func (msg MsgAddLiquidity) ValidateBasic() error {
	if msg.Provider == "" {
		return sdkerrors.Wrap(ErrInvalidAddress, "provider address cannot be empty")
	}
	if msg.Recipient == "" {
		return sdkerrors.Wrap(ErrInvalidAddress, "recipient address cannot be empty")
	}
	if msg.TokenA == "" || msg.TokenB == "" {
		return sdkerrors.Wrap(ErrInvalidInput, "token denominations cannot be empty")
	}
	if msg.TokenA == msg.TokenB {
		return sdkerrors.Wrapf(ErrIdenticalTokens, "cannot pair %s with itself", msg.TokenA)
	}
	if msg.DesiredA.IsNil() || !msg.DesiredA.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "desired amount A must be positive")
	}
	if msg.DesiredB.IsNil() || !msg.DesiredB.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "desired amount B must be positive")
	}
	if msg.MinA.IsNil() || msg.MinA.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount A cannot be negative")
	}
	if msg.MinB.IsNil() || msg.MinB.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount B cannot be negative")
	}
	if msg.MinA.GT(msg.DesiredA) || msg.MinB.GT(msg.DesiredB) {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amounts cannot exceed desired amounts")
	}
	if msg.Deadline <= 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "deadline must be a positive unix timestamp")
	}
	return nil
}
