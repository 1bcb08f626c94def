package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/seedscope/seedscope/internal/common"
)

// Pipeline carries every tunable the pipeline stages need. It is built
// once per run and passed by value into each stage so that a run is a
// pure function of (input, configuration).
type Pipeline struct {
	ColumnAliases map[string][]string
	IndustryVocab map[string]string
	DateLayouts   []string
	ExchangeRate  float64
	IQRMultiplier float64
	Epsilon       float64
	Seed          int64
	KMin          int
	KMax          int
	DefaultK      int
	ForcedK       int
	MaxIterations int
	Restarts      int
}

// Default returns the pipeline configuration used when nothing is
// overridden. The exchange rate is the fixed INR to USD constant applied
// to rupee-denominated amounts.
func Default() Pipeline {
	return Pipeline{
		ExchangeRate:  0.012,
		IQRMultiplier: 1.5,
		KMin:          2,
		KMax:          10,
		DefaultK:      4,
		ForcedK:       0,
		Seed:          42,
		MaxIterations: 300,
		Restarts:      10,
		Epsilon:       1e-6,
		DateLayouts:   defaultDateLayouts(),
		ColumnAliases: defaultColumnAliases(),
		IndustryVocab: defaultIndustryVocab(),
	}
}

// FromViper builds a pipeline configuration from defaults overridden by
// any values present in the loaded viper configuration.
func FromViper() Pipeline {
	cfg := Default()

	if viper.IsSet("pipeline.exchange_rate") {
		cfg.ExchangeRate = viper.GetFloat64("pipeline.exchange_rate")
	}
	if viper.IsSet("pipeline.iqr_multiplier") {
		cfg.IQRMultiplier = viper.GetFloat64("pipeline.iqr_multiplier")
	}
	if viper.IsSet("pipeline.k_min") {
		cfg.KMin = viper.GetInt("pipeline.k_min")
	}
	if viper.IsSet("pipeline.k_max") {
		cfg.KMax = viper.GetInt("pipeline.k_max")
	}
	if viper.IsSet("pipeline.default_k") {
		cfg.DefaultK = viper.GetInt("pipeline.default_k")
	}
	if viper.IsSet("pipeline.seed") {
		cfg.Seed = viper.GetInt64("pipeline.seed")
	}
	if viper.IsSet("pipeline.max_iterations") {
		cfg.MaxIterations = viper.GetInt("pipeline.max_iterations")
	}
	if viper.IsSet("pipeline.restarts") {
		cfg.Restarts = viper.GetInt("pipeline.restarts")
	}
	if viper.IsSet("pipeline.epsilon") {
		cfg.Epsilon = viper.GetFloat64("pipeline.epsilon")
	}
	if viper.IsSet("pipeline.date_layouts") {
		cfg.DateLayouts = viper.GetStringSlice("pipeline.date_layouts")
	}
	if viper.IsSet("pipeline.column_aliases") {
		cfg.ColumnAliases = viper.GetStringMapStringSlice("pipeline.column_aliases")
	}
	if viper.IsSet("pipeline.industry_vocab") {
		cfg.IndustryVocab = viper.GetStringMapString("pipeline.industry_vocab")
	}

	return cfg
}

// Validate checks the configuration for values the pipeline cannot run with.
func (p Pipeline) Validate() error {
	if p.ExchangeRate <= 0 {
		return fmt.Errorf("%w: exchange rate must be positive, got %v", common.ErrInvalidConfig, p.ExchangeRate)
	}
	if p.IQRMultiplier <= 0 {
		return fmt.Errorf("%w: IQR multiplier must be positive, got %v", common.ErrInvalidConfig, p.IQRMultiplier)
	}
	if p.KMin < 1 {
		return fmt.Errorf("%w: k_min must be at least 1, got %d", common.ErrInvalidConfig, p.KMin)
	}
	if p.KMax < p.KMin {
		return fmt.Errorf("%w: k_max %d is below k_min %d", common.ErrInvalidConfig, p.KMax, p.KMin)
	}
	if p.DefaultK < 1 {
		return fmt.Errorf("%w: default_k must be at least 1, got %d", common.ErrInvalidConfig, p.DefaultK)
	}
	if p.ForcedK < 0 {
		return fmt.Errorf("%w: forced K cannot be negative, got %d", common.ErrInvalidConfig, p.ForcedK)
	}
	if p.MaxIterations < 1 {
		return fmt.Errorf("%w: max_iterations must be at least 1, got %d", common.ErrInvalidConfig, p.MaxIterations)
	}
	if p.Restarts < 1 {
		return fmt.Errorf("%w: restarts must be at least 1, got %d", common.ErrInvalidConfig, p.Restarts)
	}
	if p.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be positive, got %v", common.ErrInvalidConfig, p.Epsilon)
	}
	if len(p.DateLayouts) == 0 {
		return fmt.Errorf("%w: at least one date layout is required", common.ErrMissingConfig)
	}
	if len(p.ColumnAliases) == 0 {
		return fmt.Errorf("%w: column aliases are required to map input headers", common.ErrMissingConfig)
	}
	return nil
}

func defaultDateLayouts() []string {
	return []string{
		"2006-01-02",
		"2006/01/02",
		"02/01/2006",
		"01/02/2006",
		"02-01-2006",
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
	}
}

// defaultColumnAliases maps each canonical field to the header substrings
// that identify it. Matching is case-insensitive; the first canonical
// field whose substring matches an unclaimed header wins.
func defaultColumnAliases() map[string][]string {
	return map[string][]string{
		"entity_name": {"startup", "company", "entity"},
		"industry":    {"industry", "sector", "vertical"},
		"city":        {"city"},
		"state":       {"state"},
		"amount":      {"amount", "funding"},
		"round_label": {"round", "stage"},
		"investors":   {"investor"},
		"date":        {"date"},
	}
}

// defaultIndustryVocab maps lower-cased industry spellings to their
// canonical category. Values not present pass through verbatim.
func defaultIndustryVocab() map[string]string {
	return map[string]string{
		"fintech":               "Fintech",
		"financial services":    "Fintech",
		"e-commerce":            "E-commerce",
		"ecommerce":             "E-commerce",
		"healthtech":            "Healthtech",
		"health tech":           "Healthtech",
		"healthcare":            "Healthtech",
		"edtech":                "Edtech",
		"education":             "Edtech",
		"foodtech":              "Foodtech",
		"food tech":             "Foodtech",
		"agritech":              "Agritech",
		"agri tech":             "Agritech",
		"cleantech":             "CleanTech",
		"logistics":             "Logistics",
		"gaming":                "Gaming",
		"saas":                  "SaaS",
		"ai/ml":                 "AI/ML",
		"ai":                    "AI/ML",
		"iot":                   "IoT",
		"blockchain":            "Blockchain",
		"cybersecurity":         "Cybersecurity",
		"hr tech":               "HR Tech",
		"hrtech":                "HR Tech",
		"real estate":           "Real Estate",
		"media & entertainment": "Media & Entertainment",
		"travel & hospitality":  "Travel & Hospitality",
		"enterprise software":   "Enterprise Software",
		"consumer services":     "Consumer Services",
		"cloud services":        "Cloud Services",
		"renewable energy":      "Renewable Energy",
		"analytics":             "Analytics",
		"automotive":            "Automotive",
		"hardware":              "Hardware",
		"biotechnology":         "Biotechnology",
	}
}
