package core

import "sync"

// CostLedger accumulates the estimated spend of one run. Rates are fixed
// per-call amounts per vendor; unknown vendors cost zero. The ledger is
// append-only and never decremented.
type CostLedger struct {
	mu        sync.Mutex
	rates     map[string]float64
	total     float64
	breakdown map[string]float64
}

func NewCostLedger(rates map[string]float64) *CostLedger {
	if rates == nil {
		rates = map[string]float64{}
	}
	return &CostLedger{rates: rates, breakdown: map[string]float64{}}
}

// Add records one call against a vendor.
func (l *CostLedger) Add(vendor string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cost := l.rates[vendor]
	l.total += cost
	l.breakdown[vendor] += cost
}

// Total returns the accumulated estimate.
func (l *CostLedger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Breakdown returns a copy of the per-vendor totals.
func (l *CostLedger) Breakdown() map[string]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]float64, len(l.breakdown))
	for vendor, cost := range l.breakdown {
		out[vendor] = cost
	}
	return out
}
