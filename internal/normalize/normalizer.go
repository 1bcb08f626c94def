// Package normalize parses raw textual funding records into typed
// cleaned events. Parsing is total: every field yields a value plus a
// diagnostic flag, never an error.
package normalize

import (
	"github.com/seedscope/seedscope/internal/config"
	"github.com/seedscope/seedscope/internal/model"
)

// Normalizer converts RawEvents into CleanedEvent candidates using the
// run configuration.
type Normalizer struct {
	cfg config.Pipeline
}

// New creates a normalizer for the given run configuration.
func New(cfg config.Pipeline) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Result is a normalized event plus the per-field diagnostics the
// resolver aggregates into run statistics.
type Result struct {
	Event             model.CleanedEvent
	AmountMissing     bool
	AmountParseFailed bool
	DateParseFailed   bool
}

// Normalize produces the cleaned candidate for one raw row. It never
// fails; unparseable fields fall back to their zero policy and are
// flagged on the result.
func (n *Normalizer) Normalize(raw model.RawEvent) Result {
	var res Result

	res.Event.EntityName = TitleCase(raw.EntityName)
	res.Event.Industry = CanonicalIndustry(raw.Industry, n.cfg.IndustryVocab)
	res.Event.City = TitleCase(raw.City)
	res.Event.State = TitleCase(raw.State)
	res.Event.RoundLabel = TitleCase(raw.RoundLabel)
	res.Event.Investors = SplitInvestors(raw.Investors)

	if CleanText(raw.Amount) == "" {
		res.AmountMissing = true
	} else if amount, ok := ParseAmount(raw.Amount, n.cfg.ExchangeRate); ok {
		res.Event.AmountUSD = amount
	} else {
		res.AmountParseFailed = true
	}

	if CleanText(raw.Date) != "" {
		date, ok := ParseDate(raw.Date, n.cfg.DateLayouts)
		if ok {
			res.Event.Date = date
		} else {
			res.DateParseFailed = true
		}
	}

	return res
}
