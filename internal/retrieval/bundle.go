package retrieval

import "main/internal/nlu"

// Category names are the stable, enumerable bundle keys the response
// generator renders from. A key is present for every category its
// intent's plan asked about, so "asked, no data" is distinguishable
// from "not asked".
const (
	CategoryInvestments     = "investments"
	CategoryAllocation      = "allocation"
	CategoryComparison      = "comparison"
	CategoryAssetMetrics    = "asset_metrics"
	CategoryAgeStrategy     = "age_strategy"
	CategoryMistakes        = "mistakes"
	CategoryConversionRates = "conversion_rates"
)

// Resolved is one fact resolved by a query plan.
type Resolved struct {
	Subject string `json:"subject"`
	Value   string `json:"value"`
}

// Category holds the resolved values for one requested fact category.
// NoData marks a category whose query matched nothing.
type Category struct {
	Values []Resolved `json:"values,omitempty"`
	NoData bool       `json:"noData,omitempty"`
}

// Investment is one entry of the two-hop risk-profile join: an
// investment type with its expected return and risk rating.
type Investment struct {
	Type           string `json:"type"`
	ExpectedReturn string `json:"expectedReturn,omitempty"`
	RiskRating     string `json:"riskRating,omitempty"`
}

// Bundle is the value object handed to the response generator. It is
// owned by the Compose call that created it and never mutated after
// construction.
type Bundle struct {
	Intent      string              `json:"intent"`
	Categories  map[string]Category `json:"categories"`
	Investments []Investment        `json:"investments,omitempty"`
	Slots       EchoedSlots         `json:"slots"`
}

// EchoedSlots repeats the originating slot values so the generator
// does not need the extractor's output.
type EchoedSlots struct {
	Age           int    `json:"age,omitempty"`
	RiskTolerance string `json:"riskTolerance,omitempty"`
	Symbol        string `json:"symbol,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

func echoSlots(slots nlu.Slots) EchoedSlots {
	echoed := EchoedSlots{
		Age:      slots.Age,
		Symbol:   slots.Symbol,
		Currency: slots.Currency,
	}
	if slots.RiskTolerance.IsAvailable() {
		echoed.RiskTolerance = slots.RiskTolerance.String()
	}
	return echoed
}
