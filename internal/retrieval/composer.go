package retrieval

import (
	"errors"
	"strconv"

	"main/internal/knowledge"
	"main/internal/nlu"
)

var ErrUnsupportedIntent = errors.New("retrieval: unsupported intent")

// Composer maps each supported intent onto a fixed sequence of fact
// store query patterns and joins the results into a Bundle.
type Composer struct {
	store *knowledge.Store
}

// NewComposer wires a composer to its fact store.
func NewComposer(store *knowledge.Store) *Composer {
	return &Composer{store: store}
}

// Compose runs the query plan for the intent. Unsupported intents fail
// with ErrUnsupportedIntent; the caller is expected to fall back to a
// generic path.
func (c *Composer) Compose(intent nlu.Intent, slots nlu.Slots) (Bundle, error) {
	bundle := Bundle{
		Intent:     intent.String(),
		Categories: make(map[string]Category),
		Slots:      echoSlots(slots),
	}

	switch intent {
	case nlu.IntentRiskProfileQuery:
		c.composeRiskProfile(&bundle, slots)
	case nlu.IntentAssetComparison:
		c.composeComparison(&bundle, slots)
	case nlu.IntentAllocationByAge:
		c.composeAgeStrategy(&bundle, slots)
	case nlu.IntentMistakeQuery:
		c.composeMistakes(&bundle)
	default:
		return Bundle{}, ErrUnsupportedIntent
	}

	if slots.Currency != "" {
		c.composeConversionRates(&bundle)
	}
	return bundle, nil
}

// composeRiskProfile is the two-hop join: tolerance -> investment
// types, then per type its expected return and risk rating.
func (c *Composer) composeRiskProfile(bundle *Bundle, slots nlu.Slots) {
	tolerance := slots.RiskTolerance
	if !tolerance.IsAvailable() {
		tolerance = nlu.ToleranceModerate
	}

	types := c.store.Query(knowledge.Pattern{
		Relation: "risk_profile",
		Subject:  tolerance.String(),
	})
	if len(types) == 0 {
		// First hop empty: record the marker and skip the second hop.
		bundle.Categories[CategoryInvestments] = Category{NoData: true}
	} else {
		bundle.Categories[CategoryInvestments] = Category{Values: bindingsToResolved(types)}
		for _, binding := range types {
			investment := Investment{Type: binding.Value.Symbol}
			if returns := c.store.Query(knowledge.Pattern{
				Relation: "expected_return",
				Subject:  binding.Value.Symbol,
			}); len(returns) > 0 {
				investment.ExpectedReturn = returns[0].Value.String()
			}
			if ratings := c.store.Query(knowledge.Pattern{
				Relation: "risk_rating",
				Subject:  binding.Value.Symbol,
			}); len(ratings) > 0 {
				investment.RiskRating = ratings[0].Value.String()
			}
			bundle.Investments = append(bundle.Investments, investment)
		}
	}

	bundle.Categories[CategoryAllocation] = c.category(knowledge.Pattern{
		Relation: "allocation",
		Subject:  tolerance.String(),
	})
}

func (c *Composer) composeComparison(bundle *Bundle, slots nlu.Slots) {
	// The seed carries a closed set of pairwise comparisons; anything
	// crypto-flavored falls back to the crypto-vs-stocks prose.
	pair := "crypto_vs_stocks"
	if slots.Symbol == "bitcoin" {
		pair = "bitcoin_vs_sp500"
	} else if slots.Symbol == "bonds" {
		pair = "bonds_vs_stocks"
	}
	bundle.Categories[CategoryComparison] = c.category(knowledge.Pattern{
		Relation: "comparison",
		Subject:  pair,
	})

	if slots.Symbol != "" {
		metrics := make([]Resolved, 0, 2)
		if vols := c.store.Query(knowledge.Pattern{Relation: "volatility", Subject: slots.Symbol}); len(vols) > 0 {
			metrics = append(metrics, Resolved{Subject: "volatility", Value: vols[0].Value.String()})
		}
		if rets := c.store.Query(knowledge.Pattern{Relation: "expected_return", Subject: slots.Symbol}); len(rets) > 0 {
			metrics = append(metrics, Resolved{Subject: "expected_return", Value: rets[0].Value.String()})
		}
		bundle.Categories[CategoryAssetMetrics] = Category{Values: metrics, NoData: len(metrics) == 0}
	}
}

func (c *Composer) composeAgeStrategy(bundle *Bundle, slots nlu.Slots) {
	bundle.Categories[CategoryAgeStrategy] = c.category(knowledge.Pattern{
		Relation: "age_strategy",
		Subject:  decadeBucket(slots.Age),
	})
}

func (c *Composer) composeMistakes(bundle *Bundle) {
	bundle.Categories[CategoryMistakes] = c.category(knowledge.Pattern{
		Relation: "mistake",
	})
}

func (c *Composer) composeConversionRates(bundle *Bundle) {
	bundle.Categories[CategoryConversionRates] = c.category(knowledge.Pattern{
		Relation: "conversion_rate",
	})
}

// category runs one query and wraps its bindings, recording the
// explicit no-data marker when nothing matched.
func (c *Composer) category(pattern knowledge.Pattern) Category {
	bindings := c.store.Query(pattern)
	if len(bindings) == 0 {
		return Category{NoData: true}
	}
	return Category{Values: bindingsToResolved(bindings)}
}

func bindingsToResolved(bindings []knowledge.Binding) []Resolved {
	out := make([]Resolved, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, Resolved{Subject: b.Subject, Value: b.Value.String()})
	}
	return out
}

// decadeBucket maps an age onto the age_strategy subjects.
func decadeBucket(age int) string {
	switch {
	case age <= 0:
		return ""
	case age < 20:
		return "20s"
	case age >= 70:
		return "60s"
	default:
		return strconv.Itoa(age/10*10) + "s"
	}
}
