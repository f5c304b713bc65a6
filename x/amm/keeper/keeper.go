package keeper

import (
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// Keeper owns the pool registry and all liquidity accounting. Every mutating
// operation on a pool runs inside that pool's critical section, held across the
// ledger transfers it performs, so operations on one pool are serialized while
// distinct pools proceed in parallel.
type Keeper struct {
	mu        sync.RWMutex
	pools     map[uint64]types.Pool
	poolIDs   map[string]uint64              // canonical pair key -> pool ID
	positions map[uint64]map[string]math.Int // pool ID -> holder -> shares
	poolLocks map[uint64]*sync.Mutex
	nextID    uint64

	params  types.Params
	ledger  types.AssetLedger
	logger  log.Logger
	metrics *Metrics

	// now supplies the clock for deadline checks; injectable for tests.
	now func() time.Time
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(ledger types.AssetLedger, params types.Params, logger log.Logger) (*Keeper, error) {
	if ledger == nil {
		return nil, types.ErrInvalidInput.Wrap("asset ledger cannot be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("NewKeeper: validate params: %w", err)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Keeper{
		pools:     make(map[uint64]types.Pool),
		poolIDs:   make(map[string]uint64),
		positions: make(map[uint64]map[string]math.Int),
		poolLocks: make(map[uint64]*sync.Mutex),
		nextID:    1,
		params:    params,
		ledger:    ledger,
		logger:    logger.With("module", types.ModuleName),
		metrics:   NewMetrics(),
		now:       time.Now,
	}, nil
}

// SetClock overrides the deadline clock. Test hook.
func (k *Keeper) SetClock(now func() time.Time) {
	k.now = now
}

// GetParams returns the engine parameters
func (k *Keeper) GetParams() types.Params {
	return k.params
}

// Logger returns the keeper's logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// poolLock returns the mutex serializing operations on the given pool.
func (k *Keeper) poolLock(poolID uint64) (*sync.Mutex, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	lock, ok := k.poolLocks[poolID]
	if !ok {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}
	return lock, nil
}

// getPool returns a copy of the pool. Callers mutate the copy and commit it
// back with setPool; the map never hands out shared mutable state.
func (k *Keeper) getPool(poolID uint64) (types.Pool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	pool, ok := k.pools[poolID]
	if !ok {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}
	return pool, nil
}

// setPool commits a pool value to the registry.
func (k *Keeper) setPool(pool types.Pool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pools[pool.Id] = pool
}

// GetLiquidity returns holder's share balance in a pool. A holder with no
// position has zero shares, not an error.
func (k *Keeper) GetLiquidity(poolID uint64, holder string) (math.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if _, ok := k.pools[poolID]; !ok {
		return math.ZeroInt(), types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}
	shares, ok := k.positions[poolID][holder]
	if !ok {
		return math.ZeroInt(), nil
	}
	return shares, nil
}

// setLiquidity commits holder's share balance, dropping emptied positions.
func (k *Keeper) setLiquidity(poolID uint64, holder string, shares math.Int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	byHolder, ok := k.positions[poolID]
	if !ok {
		byHolder = make(map[string]math.Int)
		k.positions[poolID] = byHolder
	}
	if shares.IsZero() {
		delete(byHolder, holder)
		return
	}
	byHolder[holder] = shares
}

// IterateLiquidity calls cb for every position in a pool over a consistent
// snapshot of the positions map.
func (k *Keeper) IterateLiquidity(poolID uint64, cb func(holder string, shares math.Int) (stop bool)) {
	k.mu.RLock()
	snapshot := make(map[string]math.Int, len(k.positions[poolID]))
	for holder, shares := range k.positions[poolID] {
		snapshot[holder] = shares
	}
	k.mu.RUnlock()

	for holder, shares := range snapshot {
		if cb(holder, shares) {
			return
		}
	}
}

// emitEvent records a structured engine event on the log stream.
func (k *Keeper) emitEvent(eventType string, attrs ...any) {
	k.logger.Info(eventType, attrs...)
}
