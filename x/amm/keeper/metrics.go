package keeper

import (
	"math/big"
	"strconv"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// Metrics holds the Prometheus instruments for the AMM engine
type Metrics struct {
	SwapsTotal       *prometheus.CounterVec
	SwapVolume       *prometheus.CounterVec
	SwapLatency      prometheus.Histogram
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolsTotal       prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers engine metrics. Singleton: promauto
// registers against the default registry, so repeated keeper construction
// (tests in particular) shares one instrument set.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "aquifer",
					Subsystem: types.ModuleName,
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "token_in", "token_out", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "aquifer",
					Subsystem: types.ModuleName,
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "aquifer",
					Subsystem: types.ModuleName,
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "aquifer",
					Subsystem: types.ModuleName,
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pool_id", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "aquifer",
					Subsystem: types.ModuleName,
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"pool_id", "denom"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "aquifer",
					Subsystem: types.ModuleName,
					Name:      "pools_total",
					Help:      "Number of registered pools",
				},
			),
		}
	})
	return metrics
}

// ObserveSwapExecuted records a successful swap
func (m *Metrics) ObserveSwapExecuted(pool types.Pool, tokenIn, tokenOut string, amountIn math.Int) {
	if m == nil {
		return
	}
	id := strconv.FormatUint(pool.Id, 10)
	m.SwapsTotal.WithLabelValues(id, tokenIn, tokenOut, "success").Inc()
	m.SwapVolume.WithLabelValues(id, tokenIn).Add(amountToFloat(amountIn))
}

// ObserveSwapFailed records a rejected or failed swap
func (m *Metrics) ObserveSwapFailed(pool types.Pool, tokenIn, tokenOut string) {
	if m == nil {
		return
	}
	m.SwapsTotal.WithLabelValues(strconv.FormatUint(pool.Id, 10), tokenIn, tokenOut, "failed").Inc()
}

// ObserveLiquidityAdded records a deposit
func (m *Metrics) ObserveLiquidityAdded(pool types.Pool, amountA, amountB math.Int) {
	if m == nil {
		return
	}
	id := strconv.FormatUint(pool.Id, 10)
	m.LiquidityAdded.WithLabelValues(id, pool.TokenA).Add(amountToFloat(amountA))
	m.LiquidityAdded.WithLabelValues(id, pool.TokenB).Add(amountToFloat(amountB))
}

// ObserveLiquidityRemoved records a withdrawal
func (m *Metrics) ObserveLiquidityRemoved(pool types.Pool, amountA, amountB math.Int) {
	if m == nil {
		return
	}
	id := strconv.FormatUint(pool.Id, 10)
	m.LiquidityRemoved.WithLabelValues(id, pool.TokenA).Add(amountToFloat(amountA))
	m.LiquidityRemoved.WithLabelValues(id, pool.TokenB).Add(amountToFloat(amountB))
}

// amountToFloat converts an Int for metric observation, tolerating values past
// int64 range. Metrics are approximate by nature; accounting never uses this.
func amountToFloat(amount math.Int) float64 {
	if amount.IsInt64() {
		return float64(amount.Int64())
	}
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
