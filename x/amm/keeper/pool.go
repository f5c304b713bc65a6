package keeper

import (
	"sort"
	"sync"

	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// pairKey builds the canonical registry key for an ordered token pair.
func pairKey(tokenA, tokenB string) string {
	return tokenA + "|" + tokenB
}

// GetOrCreatePool resolves the unique pool for an unordered token pair,
// creating an empty one when none exists. Idempotent: both argument orders and
// repeated calls land on the same pool. New pools carry zero reserves; the
// first deposit initializes them.
func (k *Keeper) GetOrCreatePool(tokenX, tokenY string) (types.Pool, error) {
	if tokenX == "" || tokenY == "" {
		return types.Pool{}, types.ErrInvalidInput.Wrap("token denominations cannot be empty")
	}
	if tokenX == tokenY {
		return types.Pool{}, types.ErrIdenticalTokens.Wrapf("cannot pair %s with itself", tokenX)
	}

	tokenA, tokenB := types.OrderTokens(tokenX, tokenY)

	k.mu.Lock()
	defer k.mu.Unlock()

	if id, ok := k.poolIDs[pairKey(tokenA, tokenB)]; ok {
		return k.pools[id], nil
	}

	pool := types.Pool{
		Id:          k.nextID,
		TokenA:      tokenA,
		TokenB:      tokenB,
		ReserveA:    math.ZeroInt(),
		ReserveB:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
	}
	k.nextID++

	k.pools[pool.Id] = pool
	k.poolIDs[pairKey(tokenA, tokenB)] = pool.Id
	k.poolLocks[pool.Id] = &sync.Mutex{}
	k.positions[pool.Id] = make(map[string]math.Int)

	k.metrics.PoolsTotal.Inc()
	k.emitEvent(types.EventTypePoolCreated,
		types.AttributeKeyPoolID, pool.Id,
		types.AttributeKeyTokenA, tokenA,
		types.AttributeKeyTokenB, tokenB,
	)

	return pool, nil
}

// GetPool retrieves a pool by its unique numeric ID.
// Returns ErrPoolNotFound if the pool does not exist.
func (k *Keeper) GetPool(poolID uint64) (types.Pool, error) {
	return k.getPool(poolID)
}

// GetPoolByTokens retrieves the pool for a token pair (order-independent).
// Pure lookup: never creates. Returns ErrPoolNotFound if no pool exists.
func (k *Keeper) GetPoolByTokens(tokenX, tokenY string) (types.Pool, error) {
	if tokenX == tokenY {
		return types.Pool{}, types.ErrIdenticalTokens.Wrapf("cannot pair %s with itself", tokenX)
	}
	tokenA, tokenB := types.OrderTokens(tokenX, tokenY)

	k.mu.RLock()
	defer k.mu.RUnlock()
	id, ok := k.poolIDs[pairKey(tokenA, tokenB)]
	if !ok {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool not found for token pair %s/%s", tokenA, tokenB)
	}
	return k.pools[id], nil
}

// GetReserves returns the pool reserves in the caller's token order, so a
// caller asking for (Y, X) sees (reserveY, reserveX).
func (k *Keeper) GetReserves(tokenX, tokenY string) (math.Int, math.Int, error) {
	pool, err := k.GetPoolByTokens(tokenX, tokenY)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if tokenX == pool.TokenA {
		return pool.ReserveA, pool.ReserveB, nil
	}
	return pool.ReserveB, pool.ReserveA, nil
}

// GetAllPools returns every registered pool ordered by ID.
func (k *Keeper) GetAllPools() []types.Pool {
	k.mu.RLock()
	pools := make([]types.Pool, 0, len(k.pools))
	for _, pool := range k.pools {
		pools = append(pools, pool)
	}
	k.mu.RUnlock()

	sort.Slice(pools, func(i, j int) bool { return pools[i].Id < pools[j].Id })
	return pools
}

// PoolCount returns the number of registered pools.
func (k *Keeper) PoolCount() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pools)
}
