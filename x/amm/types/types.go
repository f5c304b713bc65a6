package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// ModuleAccount is the ledger account that holds pool custody balances.
	// Every pool's reserves are backed by this account's ledger balance.
	ModuleAccount = "amm_pool_custody"
)

// Event types emitted by the AMM engine
const (
	EventTypePoolCreated     = "pool_created"
	EventTypeAddLiquidity    = "add_liquidity"
	EventTypeRemoveLiquidity = "remove_liquidity"
	EventTypeSwap            = "swap"
)

// Event attribute keys
const (
	AttributeKeyPoolID    = "pool_id"
	AttributeKeyTokenA    = "token_a"
	AttributeKeyTokenB    = "token_b"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyShares    = "shares"
	AttributeKeyProvider  = "provider"
	AttributeKeyTrader    = "trader"
	AttributeKeyRecipient = "recipient"
	AttributeKeyTokenIn   = "token_in"
	AttributeKeyTokenOut  = "token_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
)
