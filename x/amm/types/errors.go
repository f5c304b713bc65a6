package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrIdenticalTokens              = errors.Register(ModuleName, 1, "identical token denominations")
	ErrPoolNotFound                 = errors.Register(ModuleName, 2, "pool not found")
	ErrInvalidInput                 = errors.Register(ModuleName, 3, "invalid input")
	ErrInsufficientInputAmount      = errors.Register(ModuleName, 4, "insufficient input amount")
	ErrInsufficientOutputAmount     = errors.Register(ModuleName, 5, "insufficient output amount")
	ErrInsufficientLiquidity        = errors.Register(ModuleName, 6, "insufficient liquidity in pool")
	ErrInsufficientLiquidityMinted  = errors.Register(ModuleName, 7, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned  = errors.Register(ModuleName, 8, "insufficient liquidity burned")
	ErrInsufficientInitialLiquidity = errors.Register(ModuleName, 9, "insufficient initial liquidity")
	ErrInsufficientShares           = errors.Register(ModuleName, 10, "insufficient liquidity shares")
	ErrSlippageExceeded             = errors.Register(ModuleName, 11, "slippage exceeded caller bound")
	ErrDeadlineExceeded             = errors.Register(ModuleName, 12, "deadline exceeded")
	ErrInvalidAddress               = errors.Register(ModuleName, 13, "invalid address")
	ErrInvalidSwapPath              = errors.Register(ModuleName, 14, "invalid swap path")
	ErrOverflow                     = errors.Register(ModuleName, 15, "arithmetic overflow")
	ErrInvariantViolation           = errors.Register(ModuleName, 16, "invariant violation")
	ErrInvalidPoolState             = errors.Register(ModuleName, 17, "invalid pool state")
	ErrLedgerFailure                = errors.Register(ModuleName, 18, "asset ledger operation failed")
)
