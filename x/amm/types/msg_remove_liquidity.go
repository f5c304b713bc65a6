package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// MsgRemoveLiquidity is a request to burn liquidity shares and withdraw the
// proportional slice of both reserves.
type MsgRemoveLiquidity struct {
	Provider  string   `json:"provider"`
	TokenA    string   `json:"token_a"`
	TokenB    string   `json:"token_b"`
	Shares    math.Int `json:"shares"`
	MinA      math.Int `json:"min_a"`
	MinB      math.Int `json:"min_b"`
	Recipient string   `json:"recipient"`
	Deadline  int64    `json:"deadline"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(provider, tokenA, tokenB string, shares, minA, minB math.Int, recipient string, deadline int64) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{
		Provider:  provider,
		TokenA:    tokenA,
		TokenB:    tokenB,
		Shares:    shares,
		MinA:      minA,
		MinB:      minB,
		Recipient: recipient,
		Deadline:  deadline,
	}
}

// ValidateBasic performs stateless validation of the request
func (msg MsgRemoveLiquidity) ValidateBasic() error {
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
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "shares must be positive")
	}
	if msg.MinA.IsNil() || msg.MinA.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount A cannot be negative")
	}
	if msg.MinB.IsNil() || msg.MinB.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount B cannot be negative")
	}
	if msg.Deadline <= 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "deadline must be a positive unix timestamp")
	}
	return nil
}
