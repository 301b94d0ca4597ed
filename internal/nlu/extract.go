package nlu

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// IncompleteCommandError names the trade-command slots that could not
// be extracted. The coordinator never receives a partial command.
type IncompleteCommandError struct {
	Missing []string
}

func (e *IncompleteCommandError) Error() string {
	return "nlu: incomplete trade command, missing: " + strings.Join(e.Missing, ", ")
}

// Slots carries the values extracted from free text. Zero values mean
// the slot was absent.
type Slots struct {
	Age           int
	RiskTolerance Tolerance
	Symbol        string
	Quantity      decimal.Decimal
	Side          Side
	Currency      string
}

const tradePrefix = "execute trade:"

var (
	agePattern      = regexp.MustCompile(`(?:i'?m|i am|age)\s+(\d{1,3})\s*(?:years?|yrs?|y\.?o\.?)?(?:\s+old)?`)
	quantityPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	symbolPattern   = regexp.MustCompile(`^[A-Z]{1,6}(?:/[A-Z]{2,6})?$`)

	conservativePattern = regexp.MustCompile(`\b(conservative|low risk|safe approach|risk-averse)\b`)
	aggressivePattern   = regexp.MustCompile(`\b(aggressive|high risk|growth-focused|risk-seeking)\b`)
	moderatePattern     = regexp.MustCompile(`\b(moderate|balanced|medium risk)\b`)
)

// currencyAliases maps spoken currency words onto ISO-ish codes.
var currencyAliases = map[string]string{
	"usd": "USD", "dollar": "USD", "dollars": "USD", "$": "USD",
	"eur": "EUR", "euro": "EUR", "euros": "EUR",
	"inr": "INR", "rupee": "INR", "rupees": "INR",
}

// assetAliases maps asset mentions onto the subjects used by the fact
// seed, for comparison queries.
var assetAliases = map[string]string{
	"bitcoin": "bitcoin", "btc": "bitcoin",
	"ethereum": "ethereum", "eth": "ethereum",
	"solana": "solana", "sol": "solana",
	"s&p": "sp500", "sp500": "sp500", "spy": "sp500", "index": "sp500",
	"stocks": "stocks", "stock": "stocks",
	"bonds": "bonds", "bond": "bonds",
	"crypto": "crypto",
}

// Extract classifies free text into an intent and its slot values.
// Extraction is keyword and regex based, best effort: when nothing
// matches, the intent is IntentUnclassified with whatever slots were
// found, signaling the caller to fall back to an unstructured path.
func Extract(text string) (Intent, Slots, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	slots := extractCommonSlots(lower)

	if strings.HasPrefix(lower, tradePrefix) {
		// ASCII lowering preserves length, so the prefix offset holds
		// for the original-case text too.
		return extractTradeCommand(strings.TrimSpace(text)[len(tradePrefix):], slots)
	}

	switch {
	case containsAny(lower, "portfolio", "holdings", "my positions", "pending orders"):
		return IntentPortfolioQuery, slots, nil
	case containsAny(lower, " vs ", " versus ", "compare"):
		slots.Symbol = firstAssetMention(lower)
		return IntentAssetComparison, slots, nil
	case containsAny(lower, "mistake", "bias", "psychology", "emotion", "fomo", "panic"):
		return IntentMistakeQuery, slots, nil
	case slots.Age > 0 && containsAny(lower, "invest", "retire", "plan", "allocat", "save"):
		return IntentAllocationByAge, slots, nil
	case slots.RiskTolerance.IsAvailable() || strings.Contains(lower, "risk"):
		if !slots.RiskTolerance.IsAvailable() {
			slots.RiskTolerance = ToleranceModerate
		}
		return IntentRiskProfileQuery, slots, nil
	default:
		return IntentUnclassified, slots, nil
	}
}

func extractCommonSlots(lower string) Slots {
	var slots Slots

	if m := agePattern.FindStringSubmatch(lower); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil && age >= 0 && age <= 120 {
			slots.Age = age
		}
	}

	switch {
	case conservativePattern.MatchString(lower):
		slots.RiskTolerance = ToleranceConservative
	case aggressivePattern.MatchString(lower):
		slots.RiskTolerance = ToleranceAggressive
	case moderatePattern.MatchString(lower):
		slots.RiskTolerance = ToleranceModerate
	}

	for _, token := range strings.Fields(lower) {
		if code, ok := currencyAliases[strings.Trim(token, ".,!?")]; ok {
			slots.Currency = code
			break
		}
	}

	return slots
}

// extractTradeCommand parses "execute trade: <side> <qty> <symbol>".
// Token order is free; every slot must be present.
func extractTradeCommand(rest string, slots Slots) (Intent, Slots, error) {
	for _, token := range strings.Fields(rest) {
		switch {
		case !slots.Side.IsAvailable() && strings.EqualFold(token, "buy"):
			slots.Side = SideBuy
		case !slots.Side.IsAvailable() && strings.EqualFold(token, "sell"):
			slots.Side = SideSell
		case slots.Quantity.IsZero() && quantityPattern.MatchString(token):
			if qty, err := decimal.NewFromString(token); err == nil && qty.IsPositive() {
				slots.Quantity = qty
			}
		case slots.Symbol == "" && symbolPattern.MatchString(strings.ToUpper(token)) && !isSideWord(token):
			slots.Symbol = strings.ToUpper(token)
		}
	}

	var missing []string
	if slots.Symbol == "" {
		missing = append(missing, "symbol")
	}
	if slots.Quantity.IsZero() {
		missing = append(missing, "quantity")
	}
	if !slots.Side.IsAvailable() {
		missing = append(missing, "side")
	}
	if len(missing) > 0 {
		return IntentTradeCommand, slots, &IncompleteCommandError{Missing: missing}
	}
	return IntentTradeCommand, slots, nil
}

func isSideWord(token string) bool {
	return strings.EqualFold(token, "buy") || strings.EqualFold(token, "sell")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstAssetMention(lower string) string {
	// Scan in token order so "compare bitcoin vs stocks" resolves to
	// bitcoin, not stocks.
	for _, token := range strings.Fields(lower) {
		if subject, ok := assetAliases[strings.Trim(token, ".,!?")]; ok {
			return subject
		}
	}
	return ""
}
