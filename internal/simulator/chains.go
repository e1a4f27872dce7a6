package simulator

import (
	"context"
	"math/rand"
	"sync"

	"github.com/fraudlens/fraudlens/internal/metrics"
	"github.com/fraudlens/fraudlens/internal/rng"
)

// ChainState is the simulated health of one network.
type ChainState struct {
	Chain            Chain   `json:"chain"`
	Network          string  `json:"network"`
	Status           string  `json:"status"`
	LatencyMs        float64 `json:"latencyMs"`
	BlockHeight      uint64  `json:"blockHeight"`
	GasPrice         float64 `json:"gasPrice"`
	GasUnit          string  `json:"gasUnit"`
	ActiveContracts  int     `json:"activeContracts"`
	MonitoredWallets int     `json:"monitoredWallets"`
}

// Protocol is one row of the DeFi protocol roster.
type Protocol struct {
	Name      string `json:"name"`
	Chain     Chain  `json:"blockchain"`
	Status    string `json:"status"`
	TVL       string `json:"tvl"`
	RiskLevel string `json:"riskLevel"`
}

// ChainSnapshot is every chain plus the protocol roster.
type ChainSnapshot struct {
	Chains    []ChainState `json:"chains"`
	Protocols []Protocol   `json:"protocols"`
}

// chainProfile fixes the launch state and perturbation ranges of a chain.
type chainProfile struct {
	initial    ChainState
	latency    Bounds
	gas        Bounds
	heightStep int // block height grows by [0, heightStep)
}

var chainProfiles = []chainProfile{
	{
		initial: ChainState{
			Chain: ChainEthereum, Network: "Mainnet", Status: "online",
			LatencyMs: 145, BlockHeight: 18756432, GasPrice: 23.4, GasUnit: "gwei",
			ActiveContracts: 156, MonitoredWallets: 2847,
		},
		latency:    Bounds{140, 160},
		gas:        Bounds{20, 30},
		heightStep: 3,
	},
	{
		initial: ChainState{
			Chain: ChainNEAR, Network: "Mainnet", Status: "online",
			LatencyMs: 89, BlockHeight: 104785692, GasPrice: 0.0001, GasUnit: "NEAR",
			ActiveContracts: 89, MonitoredWallets: 1249,
		},
		latency:    Bounds{80, 100},
		gas:        Bounds{0.0001, 0.0003},
		heightStep: 5,
	},
}

var protocolRoster = []Protocol{
	{Name: "Uniswap V3", Chain: ChainEthereum, Status: "online", TVL: "$4.2B", RiskLevel: "low"},
	{Name: "PancakeSwap", Chain: ChainEthereum, Status: "online", TVL: "$2.8B", RiskLevel: "low"},
	{Name: "Ref Finance", Chain: ChainNEAR, Status: "online", TVL: "$45M", RiskLevel: "medium"},
	{Name: "Aurora DEX", Chain: ChainNEAR, Status: "maintenance", TVL: "$23M", RiskLevel: "low"},
}

// ChainStatus perturbs latency and gas price and advances block heights.
// Block heights never decrease.
type ChainStatus struct {
	base

	mu     sync.RWMutex
	chains []ChainState
}

// NewChainStatus creates the generator; call Seed before reading.
func NewChainStatus(r *rand.Rand, opts ...Option) *ChainStatus {
	return &ChainStatus{base: newBase(r, opts)}
}

func (c *ChainStatus) Name() string { return rng.ChainStatus }

// Seed restores the launch state of every chain.
func (c *ChainStatus) Seed() {
	c.mu.Lock()
	chains := make([]ChainState, len(chainProfiles))
	for i, p := range chainProfiles {
		chains[i] = p.initial
	}
	c.chains = chains
	c.mu.Unlock()

	recordChains(chains)
}

// Tick perturbs every chain.
func (c *ChainStatus) Tick(_ context.Context) {
	c.mu.Lock()
	for i := range c.chains {
		p := chainProfiles[i]
		st := &c.chains[i]
		st.LatencyMs = rng.Between(c.r, p.latency.Lo, p.latency.Hi)
		st.BlockHeight += uint64(c.r.Intn(p.heightStep))
		st.GasPrice = rng.Between(c.r, p.gas.Lo, p.gas.Hi)
	}
	chains := make([]ChainState, len(c.chains))
	copy(chains, c.chains)
	c.mu.Unlock()

	recordChains(chains)
	c.publish(TopicChainStatus, c.Snapshot())
}

// Snapshot copies every chain and the protocol roster.
func (c *ChainStatus) Snapshot() ChainSnapshot {
	c.mu.RLock()
	chains := make([]ChainState, len(c.chains))
	copy(chains, c.chains)
	c.mu.RUnlock()

	protocols := make([]Protocol, len(protocolRoster))
	copy(protocols, protocolRoster)
	return ChainSnapshot{Chains: chains, Protocols: protocols}
}

// Chain returns the state of one chain.
func (c *ChainStatus) Chain(chain Chain) (ChainState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, st := range c.chains {
		if st.Chain == chain {
			return st, true
		}
	}
	return ChainState{}, false
}

func recordChains(chains []ChainState) {
	for _, st := range chains {
		metrics.ChainBlockHeight.WithLabelValues(string(st.Chain)).Set(float64(st.BlockHeight))
		metrics.ChainLatency.WithLabelValues(string(st.Chain)).Set(st.LatencyMs)
	}
}
