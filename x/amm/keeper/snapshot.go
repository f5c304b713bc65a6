package keeper

import (
	"fmt"
	"sort"
	"sync"

	"cosmossdk.io/math"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// Position is one holder's share balance in one pool, in exportable form.
type Position struct {
	PoolId uint64   `json:"pool_id"`
	Holder string   `json:"holder"`
	Shares math.Int `json:"shares"`
}

// State is a complete snapshot of the engine's accounting: everything needed
// to rebuild the registry. Ledger balances are not included; they belong to
// the external ledger.
type State struct {
	Params     types.Params `json:"params"`
	NextPoolId uint64       `json:"next_pool_id"`
	Pools      []types.Pool `json:"pools"`
	Positions  []Position   `json:"positions"`
}

// Validate checks a snapshot for internal consistency before import.
func (s State) Validate() error {
	if err := s.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}

	totals := make(map[uint64]math.Int, len(s.Pools))
	pairs := make(map[string]struct{}, len(s.Pools))
	for _, pool := range s.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d: %w", pool.Id, err)
		}
		if pool.Id >= s.NextPoolId {
			return types.ErrInvalidPoolState.Wrapf("pool id %d >= next pool id %d", pool.Id, s.NextPoolId)
		}
		if _, ok := totals[pool.Id]; ok {
			return types.ErrInvalidPoolState.Wrapf("duplicate pool id %d", pool.Id)
		}
		key := pairKey(pool.TokenA, pool.TokenB)
		if _, ok := pairs[key]; ok {
			return types.ErrInvalidPoolState.Wrapf("duplicate pool for pair %s/%s", pool.TokenA, pool.TokenB)
		}
		pairs[key] = struct{}{}
		totals[pool.Id] = math.ZeroInt()
	}

	for _, pos := range s.Positions {
		sum, ok := totals[pos.PoolId]
		if !ok {
			return types.ErrPoolNotFound.Wrapf("position references unknown pool %d", pos.PoolId)
		}
		if pos.Holder == "" {
			return types.ErrInvalidInput.Wrapf("position in pool %d has empty holder", pos.PoolId)
		}
		if pos.Shares.IsNil() || !pos.Shares.IsPositive() {
			return types.ErrInvalidInput.Wrapf("position of %s in pool %d has non-positive shares", pos.Holder, pos.PoolId)
		}
		totals[pos.PoolId] = sum.Add(pos.Shares)
	}

	for _, pool := range s.Pools {
		if !totals[pool.Id].Equal(pool.TotalShares) {
			return types.ErrInvariantViolation.Wrapf(
				"pool %d: position sum %s != total shares %s", pool.Id, totals[pool.Id], pool.TotalShares)
		}
	}
	return nil
}

// ExportState captures a consistent snapshot of the registry for persistence.
// It holds every pool lock while reading, so in-flight operations drain first
// and trading briefly blocks. Positions are ordered by pool; holder order
// within a pool is unspecified.
func (k *Keeper) ExportState() State {
	k.mu.RLock()
	ids := make([]uint64, 0, len(k.pools))
	for id := range k.pools {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	locks := make([]*sync.Mutex, len(ids))
	for i, id := range ids {
		locks[i] = k.poolLocks[id]
	}
	k.mu.RUnlock()

	// Lock order matches operations: pool mutex first, then the registry lock.
	for _, lock := range locks {
		lock.Lock()
	}
	defer func() {
		for _, lock := range locks {
			lock.Unlock()
		}
	}()

	k.mu.RLock()
	defer k.mu.RUnlock()

	pools := make([]types.Pool, 0, len(ids))
	positions := make([]Position, 0)
	for _, id := range ids {
		pools = append(pools, k.pools[id])
		for holder, shares := range k.positions[id] {
			positions = append(positions, Position{PoolId: id, Holder: holder, Shares: shares})
		}
	}

	return State{
		Params:     k.params,
		NextPoolId: k.nextID,
		Pools:      pools,
		Positions:  positions,
	}
}

// ImportState replaces the registry with a validated snapshot. Only valid on
// a keeper that is not serving traffic.
func (k *Keeper) ImportState(state State) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("ImportState: %w", err)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.params = state.Params
	k.nextID = state.NextPoolId
	k.pools = make(map[uint64]types.Pool, len(state.Pools))
	k.poolIDs = make(map[string]uint64, len(state.Pools))
	k.poolLocks = make(map[uint64]*sync.Mutex, len(state.Pools))
	k.positions = make(map[uint64]map[string]math.Int, len(state.Pools))

	for _, pool := range state.Pools {
		k.pools[pool.Id] = pool
		k.poolIDs[pairKey(pool.TokenA, pool.TokenB)] = pool.Id
		k.poolLocks[pool.Id] = &sync.Mutex{}
		k.positions[pool.Id] = make(map[string]math.Int)
	}
	for _, pos := range state.Positions {
		k.positions[pos.PoolId][pos.Holder] = pos.Shares
	}
	return nil
}
