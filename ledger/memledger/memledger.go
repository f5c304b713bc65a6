// Package memledger is an in-memory AssetLedger: per-holder balances with
// approve/transfer-from allowance semantics. It backs the daemon and the test
// suite; the engine itself only ever sees the AssetLedger interface.
package memledger

import (
	"context"
	"sync"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// Ledger sentinel errors
var (
	ErrInvalidAmount         = errors.Register("memledger", 1, "invalid amount")
	ErrInsufficientBalance   = errors.Register("memledger", 2, "insufficient balance")
	ErrInsufficientAllowance = errors.Register("memledger", 3, "insufficient allowance")
	ErrInvalidAccount        = errors.Register("memledger", 4, "invalid account")
)

// Ledger holds balances and allowances keyed by asset denom. Safe for
// concurrent use.
type Ledger struct {
	mu         sync.RWMutex
	balances   map[string]map[string]math.Int            // asset -> holder -> balance
	allowances map[string]map[string]map[string]math.Int // asset -> owner -> spender -> remaining
}

var _ types.AssetLedger = (*Ledger)(nil)

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{
		balances:   make(map[string]map[string]math.Int),
		allowances: make(map[string]map[string]map[string]math.Int),
	}
}

// Mint credits holder with newly created units of asset. Seeding helper for
// daemons and tests; a production ledger would not expose this.
func (l *Ledger) Mint(asset, holder string, amount math.Int) error {
	if err := validateTransfer(asset, holder, holder, amount); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(asset, holder, amount)
	return nil
}

// BalanceOf returns holder's balance of the given asset.
func (l *Ledger) BalanceOf(_ context.Context, asset, holder string) math.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	balance, ok := l.balances[asset][holder]
	if !ok {
		return math.ZeroInt()
	}
	return balance
}

// Transfer moves amount of asset from one account to another.
func (l *Ledger) Transfer(_ context.Context, asset, from, to string, amount math.Int) error {
	if err := validateTransfer(asset, from, to, amount); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(asset, from, to, amount)
}

// Approve authorizes spender to move up to amount of owner's asset. A second
// approval overwrites the first, it does not accumulate.
func (l *Ledger) Approve(_ context.Context, asset, owner, spender string, amount math.Int) error {
	if asset == "" || owner == "" || spender == "" {
		return ErrInvalidAccount.Wrap("asset, owner and spender cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount.Wrap("allowance cannot be nil or negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	byOwner, ok := l.allowances[asset]
	if !ok {
		byOwner = make(map[string]map[string]math.Int)
		l.allowances[asset] = byOwner
	}
	bySpender, ok := byOwner[owner]
	if !ok {
		bySpender = make(map[string]math.Int)
		byOwner[owner] = bySpender
	}
	bySpender[spender] = amount
	return nil
}

// Allowance returns the remaining amount spender may move from owner.
func (l *Ledger) Allowance(asset, owner, spender string) math.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	remaining, ok := l.allowances[asset][owner][spender]
	if !ok {
		return math.ZeroInt()
	}
	return remaining
}

// TransferFrom moves amount from owner to recipient on spender's authority,
// consuming allowance. The allowance check and the balance move are one
// atomic step under the ledger lock.
func (l *Ledger) TransferFrom(_ context.Context, asset, spender, from, to string, amount math.Int) error {
	if err := validateTransfer(asset, from, to, amount); err != nil {
		return err
	}
	if spender == "" {
		return ErrInvalidAccount.Wrap("spender cannot be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	remaining, ok := l.allowances[asset][from][spender]
	if !ok || remaining.LT(amount) {
		if !ok {
			remaining = math.ZeroInt()
		}
		return ErrInsufficientAllowance.Wrapf("spender %s has allowance %s of %s, needs %s",
			spender, remaining, asset, amount)
	}
	if err := l.move(asset, from, to, amount); err != nil {
		return err
	}
	l.allowances[asset][from][spender] = remaining.Sub(amount)
	return nil
}

// move debits from and credits to. Caller holds the write lock.
func (l *Ledger) move(asset, from, to string, amount math.Int) error {
	balance, ok := l.balances[asset][from]
	if !ok || balance.LT(amount) {
		if !ok {
			balance = math.ZeroInt()
		}
		return ErrInsufficientBalance.Wrapf("%s holds %s of %s, needs %s", from, balance, asset, amount)
	}
	l.balances[asset][from] = balance.Sub(amount)
	l.credit(asset, to, amount)
	return nil
}

// credit adds to a balance. Caller holds the write lock.
func (l *Ledger) credit(asset, holder string, amount math.Int) {
	byHolder, ok := l.balances[asset]
	if !ok {
		byHolder = make(map[string]math.Int)
		l.balances[asset] = byHolder
	}
	if existing, ok := byHolder[holder]; ok {
		byHolder[holder] = existing.Add(amount)
		return
	}
	byHolder[holder] = amount
}

func validateTransfer(asset, from, to string, amount math.Int) error {
	if asset == "" || from == "" || to == "" {
		return ErrInvalidAccount.Wrap("asset and accounts cannot be empty")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount.Wrap("amount must be positive")
	}
	return nil
}
