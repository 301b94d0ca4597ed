package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTradeCommand(t *testing.T) {
	intent, slots, err := Extract("execute trade: buy 10 AAPL")
	require.NoError(t, err)
	assert.Equal(t, IntentTradeCommand, intent)
	assert.Equal(t, SideBuy, slots.Side)
	assert.Equal(t, "10", slots.Quantity.String())
	assert.Equal(t, "AAPL", slots.Symbol)
}

func TestExtractTradeCommandCryptoPair(t *testing.T) {
	intent, slots, err := Extract("Execute trade: sell 0.5 BTC/USDT")
	require.NoError(t, err)
	assert.Equal(t, IntentTradeCommand, intent)
	assert.Equal(t, SideSell, slots.Side)
	assert.Equal(t, "0.5", slots.Quantity.String())
	assert.Equal(t, "BTC/USDT", slots.Symbol)
}

func TestExtractTradeCommandMissingQuantity(t *testing.T) {
	intent, _, err := Extract("execute trade: buy AAPL")
	assert.Equal(t, IntentTradeCommand, intent)

	var incomplete *IncompleteCommandError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"quantity"}, incomplete.Missing)
}

func TestExtractTradeCommandMissingEverything(t *testing.T) {
	_, _, err := Extract("execute trade:")

	var incomplete *IncompleteCommandError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"symbol", "quantity", "side"}, incomplete.Missing)
}

func TestExtractPortfolioQuery(t *testing.T) {
	intent, _, err := Extract("show my portfolio")
	require.NoError(t, err)
	assert.Equal(t, IntentPortfolioQuery, intent)

	intent, _, err = Extract("check my holdings please")
	require.NoError(t, err)
	assert.Equal(t, IntentPortfolioQuery, intent)
}

func TestExtractRiskProfile(t *testing.T) {
	intent, slots, err := Extract("I want a conservative approach to risk")
	require.NoError(t, err)
	assert.Equal(t, IntentRiskProfileQuery, intent)
	assert.Equal(t, ToleranceConservative, slots.RiskTolerance)

	// Bare "risk" defaults the tolerance to moderate, like the source
	// advisor did.
	intent, slots, err = Extract("what is the risk here")
	require.NoError(t, err)
	assert.Equal(t, IntentRiskProfileQuery, intent)
	assert.Equal(t, ToleranceModerate, slots.RiskTolerance)
}

func TestExtractAllocationByAge(t *testing.T) {
	intent, slots, err := Extract("I'm 28 years old, how should I invest?")
	require.NoError(t, err)
	assert.Equal(t, IntentAllocationByAge, intent)
	assert.Equal(t, 28, slots.Age)
}

func TestExtractAgeOutOfRangeIgnored(t *testing.T) {
	_, slots, err := Extract("I am 500 and want to invest")
	require.NoError(t, err)
	assert.Zero(t, slots.Age)
}

func TestExtractAssetComparison(t *testing.T) {
	intent, slots, err := Extract("compare Bitcoin vs stocks")
	require.NoError(t, err)
	assert.Equal(t, IntentAssetComparison, intent)
	assert.Equal(t, "bitcoin", slots.Symbol)
}

func TestExtractMistakeQuery(t *testing.T) {
	intent, _, err := Extract("what mistakes do investors make under FOMO?")
	require.NoError(t, err)
	assert.Equal(t, IntentMistakeQuery, intent)
}

func TestExtractCurrencySlot(t *testing.T) {
	_, slots, err := Extract("how many rupees should I invest, I am 40")
	require.NoError(t, err)
	assert.Equal(t, "INR", slots.Currency)
	assert.Equal(t, 40, slots.Age)
}

func TestExtractUnclassified(t *testing.T) {
	intent, slots, err := Extract("hello there")
	require.NoError(t, err)
	assert.Equal(t, IntentUnclassified, intent)
	assert.Zero(t, slots.Age)
	assert.False(t, slots.Side.IsAvailable())
}
