package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/fraudlens/fraudlens/internal/idgen"
	"github.com/fraudlens/fraudlens/internal/metrics"
	"github.com/fraudlens/fraudlens/internal/rng"
	"github.com/fraudlens/fraudlens/internal/traces"
	"go.opentelemetry.io/otel/trace"
)

// TxStatus is the verdict derived from a transaction's risk score.
type TxStatus string

const (
	StatusApproved TxStatus = "approved"
	StatusFlagged  TxStatus = "flagged"
	StatusBlocked  TxStatus = "blocked"
)

// Chain tags the network a record belongs to.
type Chain string

const (
	ChainEthereum Chain = "Ethereum"
	ChainNEAR     Chain = "NEAR"
)

// Risk thresholds, in percent.
const (
	FlagThreshold  = 40.0
	BlockThreshold = 70.0
)

// MaxTransactions caps the feed; the oldest entry is dropped first.
const MaxTransactions = 10

const maxAmount = 1000.0

var currencies = []string{"ETH", "NEAR", "USDC", "USDT", "DAI"}

// Transaction is a synthetic transfer shown in the live monitor.
type Transaction struct {
	ID        string    `json:"id"`
	Hash      string    `json:"hash"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	RiskScore float64   `json:"riskScore"`
	Timestamp time.Time `json:"timestamp"`
	Chain     Chain     `json:"blockchain"`
	Status    TxStatus  `json:"status"`
}

// StatusForScore maps a risk score onto a status:
// blocked above 70, flagged above 40, approved otherwise.
func StatusForScore(r float64) TxStatus {
	switch {
	case r > BlockThreshold:
		return StatusBlocked
	case r > FlagThreshold:
		return StatusFlagged
	default:
		return StatusApproved
	}
}

// TransactionFeed keeps the newest MaxTransactions synthetic transactions,
// newest first.
type TransactionFeed struct {
	base

	mu  sync.RWMutex
	txs []Transaction
}

// NewTransactionFeed creates an empty feed; call Seed before reading.
func NewTransactionFeed(r *rand.Rand, opts ...Option) *TransactionFeed {
	return &TransactionFeed{base: newBase(r, opts)}
}

func (f *TransactionFeed) Name() string { return rng.Transactions }

// Seed replaces the feed with MaxTransactions fresh records.
func (f *TransactionFeed) Seed() {
	f.mu.Lock()
	var txs []Transaction
	for i := 0; i < MaxTransactions; i++ {
		txs = prependCapped(txs, f.generate(), MaxTransactions)
	}
	f.txs = txs
	f.mu.Unlock()
}

// Tick prepends one new transaction and drops the oldest beyond the cap.
func (f *TransactionFeed) Tick(ctx context.Context) {
	f.mu.Lock()
	tx := f.generate()
	f.txs = prependCapped(f.txs, tx, MaxTransactions)
	f.mu.Unlock()

	trace.SpanFromContext(ctx).SetAttributes(traces.Chain(string(tx.Chain)), traces.RiskScore(tx.RiskScore))
	metrics.TransactionsGeneratedTotal.WithLabelValues(string(tx.Status)).Inc()
	f.publish(TopicTransaction, tx)
}

// Snapshot returns a copy of the feed, newest first.
func (f *TransactionFeed) Snapshot() []Transaction {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Transaction, len(f.txs))
	copy(out, f.txs)
	return out
}

// generate draws one record. Caller holds f.mu.
func (f *TransactionFeed) generate() Transaction {
	chain := ChainNEAR
	if rng.Chance(f.r, 0.5) {
		chain = ChainEthereum
	}
	score := f.r.Float64() * 100

	return Transaction{
		ID:        idgen.Short(f.r, 6),
		Hash:      idgen.TxHash(f.r),
		From:      idgen.Address(f.r),
		To:        idgen.Address(f.r),
		Amount:    fmt.Sprintf("%.2f", f.r.Float64()*maxAmount),
		Currency:  currencies[f.r.Intn(len(currencies))],
		RiskScore: score,
		Timestamp: f.now(),
		Chain:     chain,
		Status:    StatusForScore(score),
	}
}

// prependCapped puts v in front and trims the slice to limit entries.
func prependCapped[T any](list []T, v T, limit int) []T {
	if len(list) >= limit {
		list = list[:limit-1]
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}
