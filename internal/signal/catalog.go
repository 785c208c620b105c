// Package signal decides which strategy signals are worth acting on and
// ranks the survivors.
package signal

import (
	"sort"

	"github.com/Protrader1988/protrader-terminal-backend/internal/strategy"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

// Accept reports whether s passes its strategy's confidence floor and asks
// for a trade.
func Accept(s strategy.Strategy, sig types.Signal, mctx types.MarketContext) bool {
	return sig.IsActionable() && s.ValidateSignal(sig, mctx)
}

// Entry is one strategy's signal.
type Entry struct {
	StrategyID   string       `yaml:"strategy_id" json:"strategy_id"`
	StrategyName string       `yaml:"strategy_name" json:"strategy_name"`
	Signal       types.Signal `yaml:"signal" json:"signal"`
}

// Candidate pairs a strategy with the signal it produced.
type Candidate struct {
	Strategy strategy.Strategy
	Signal   types.Signal
}

// Filter keeps the accepted candidates in their original order.
func Filter(candidates []Candidate, mctx types.MarketContext) []Candidate {
	out := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		if Accept(c.Strategy, c.Signal, mctx) {
			out = append(out, c)
		}
	}

	return out
}

// Catalog is a ranked list of accepted signals.
type Catalog struct {
	Entries  []Entry `yaml:"entries" json:"entries"`
	Rejected int     `yaml:"rejected" json:"rejected"`
}

// Sizing is the portfolio used to size accepted signals.
type Sizing struct {
	PortfolioValue float64
	RiskFraction   float64
}

// NewCatalog filters candidates, sizes the accepted signals and ranks them by
// confidence, highest first, breaking ties by strategy id.
func NewCatalog(candidates []Candidate, mctx types.MarketContext, sizing Sizing) *Catalog {
	accepted := Filter(candidates, mctx)
	entries := make([]Entry, 0, len(accepted))

	for _, c := range accepted {
		sig := c.Signal
		sig.PositionSize = c.Strategy.CalculatePositionSize(sig, sizing.PortfolioValue, sizing.RiskFraction)

		entries = append(entries, Entry{
			StrategyID:   c.Strategy.ID(),
			StrategyName: c.Strategy.Name(),
			Signal:       sig,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Signal.Confidence != entries[j].Signal.Confidence {
			return entries[i].Signal.Confidence > entries[j].Signal.Confidence
		}

		return entries[i].StrategyID < entries[j].StrategyID
	})

	return &Catalog{Entries: entries, Rejected: len(candidates) - len(accepted)}
}

// Len returns the number of accepted entries.
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// Best returns the top ranked entry.
func (c *Catalog) Best() (Entry, bool) {
	if len(c.Entries) == 0 {
		return Entry{}, false
	}

	return c.Entries[0], true
}

// ByDirection returns the entries with the given direction, in rank order.
func (c *Catalog) ByDirection(direction types.Direction) []Entry {
	out := make([]Entry, 0, len(c.Entries))

	for _, e := range c.Entries {
		if e.Signal.Direction == direction {
			out = append(out, e)
		}
	}

	return out
}
