package nlu

// Intent is the closed classification of an inbound message.
type Intent uint8

const (
	_intent_beg Intent = iota
	IntentRiskProfileQuery
	IntentAssetComparison
	IntentAllocationByAge
	IntentMistakeQuery
	IntentTradeCommand
	IntentPortfolioQuery
	IntentUnclassified
	_intent_end
)

func (i Intent) IsAvailable() bool {
	return i > _intent_beg && i < _intent_end
}

func (i Intent) String() string {
	switch i {
	case IntentRiskProfileQuery:
		return "risk_profile_query"
	case IntentAssetComparison:
		return "asset_comparison"
	case IntentAllocationByAge:
		return "allocation_by_age"
	case IntentMistakeQuery:
		return "mistake_query"
	case IntentTradeCommand:
		return "trade_command"
	case IntentPortfolioQuery:
		return "portfolio_query"
	case IntentUnclassified:
		return "unclassified"
	default:
		return "unknown"
	}
}

// Tolerance is the user's stated risk tolerance.
type Tolerance uint8

const (
	_tolerance_beg Tolerance = iota
	ToleranceConservative
	ToleranceModerate
	ToleranceAggressive
	_tolerance_end
)

func (t Tolerance) IsAvailable() bool {
	return t > _tolerance_beg && t < _tolerance_end
}

func (t Tolerance) String() string {
	switch t {
	case ToleranceConservative:
		return "conservative"
	case ToleranceModerate:
		return "moderate"
	case ToleranceAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// Side is the trade direction extracted from a command.
type Side uint8

const (
	_side_beg Side = iota
	SideBuy
	SideSell
	_side_end
)

func (s Side) IsAvailable() bool {
	return s > _side_beg && s < _side_end
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}
