package keeper

import (
	"context"
	"fmt"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer interface
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// checkDeadline rejects requests whose deadline has already passed. A caller
// hitting this must retry with a fresh deadline; nothing has been transferred.
func (ms msgServer) checkDeadline(deadline int64) error {
	now := ms.now().Unix()
	if now > deadline {
		return types.ErrDeadlineExceeded.Wrapf("deadline %d passed at %d", deadline, now)
	}
	return nil
}

// AddLiquidity handles a liquidity deposit request
func (ms msgServer) AddLiquidity(ctx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}
	if err := ms.checkDeadline(msg.Deadline); err != nil {
		return nil, err
	}

	usedA, usedB, shares, err := ms.Keeper.AddLiquidity(ctx,
		msg.Provider, msg.TokenA, msg.TokenB,
		msg.DesiredA, msg.DesiredB, msg.MinA, msg.MinB,
		msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	pool, err := ms.GetPoolByTokens(msg.TokenA, msg.TokenB)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{
		PoolId: pool.Id,
		UsedA:  usedA,
		UsedB:  usedB,
		Shares: shares,
	}, nil
}

// RemoveLiquidity handles a liquidity withdrawal request
func (ms msgServer) RemoveLiquidity(ctx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}
	if err := ms.checkDeadline(msg.Deadline); err != nil {
		return nil, err
	}

	amountA, amountB, err := ms.Keeper.RemoveLiquidity(ctx,
		msg.Provider, msg.TokenA, msg.TokenB,
		msg.Shares, msg.MinA, msg.MinB,
		msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: amountA,
		AmountB: amountB,
	}, nil
}

// SwapExactIn handles an exact-input swap request
func (ms msgServer) SwapExactIn(ctx context.Context, msg *types.MsgSwapExactIn) (*types.MsgSwapExactInResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactIn: validate: %w", err)
	}
	if err := ms.checkDeadline(msg.Deadline); err != nil {
		return nil, err
	}

	amountOut, err := ms.ExecuteSwap(ctx,
		msg.Trader, msg.TokenIn(), msg.TokenOut(),
		msg.AmountIn, msg.MinAmountOut,
		msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("SwapExactIn: %w", err)
	}

	return &types.MsgSwapExactInResponse{AmountOut: amountOut}, nil
}
