package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/knowledge"
	"main/internal/nlu"
)

func seededComposer(t *testing.T) *Composer {
	t.Helper()
	store, err := knowledge.Load(knowledge.Seed())
	require.NoError(t, err)
	return NewComposer(store)
}

func TestComposeRiskProfileTwoHop(t *testing.T) {
	store := knowledge.NewStore()
	require.NoError(t, store.DeclareMultiValued("risk_profile"))
	require.NoError(t, store.Add("risk_profile", "moderate", knowledge.SymbolValue("index_funds")))
	require.NoError(t, store.Add("expected_return", "index_funds", knowledge.TextValue("8-10%")))

	bundle, err := NewComposer(store).Compose(nlu.IntentRiskProfileQuery, nlu.Slots{
		RiskTolerance: nlu.ToleranceModerate,
	})
	require.NoError(t, err)

	require.Len(t, bundle.Investments, 1)
	assert.Equal(t, "index_funds", bundle.Investments[0].Type)
	assert.Equal(t, "8-10%", bundle.Investments[0].ExpectedReturn)
	assert.False(t, bundle.Categories[CategoryInvestments].NoData)
}

func TestComposeRiskProfileNoDataMarker(t *testing.T) {
	// Empty store: the first hop returns nothing, the second hop is
	// skipped, and the bundle still carries the category key.
	bundle, err := NewComposer(knowledge.NewStore()).Compose(nlu.IntentRiskProfileQuery, nlu.Slots{
		RiskTolerance: nlu.ToleranceAggressive,
	})
	require.NoError(t, err)

	category, ok := bundle.Categories[CategoryInvestments]
	require.True(t, ok, "category key must be present even without data")
	assert.True(t, category.NoData)
	assert.Empty(t, bundle.Investments)

	allocation, ok := bundle.Categories[CategoryAllocation]
	require.True(t, ok)
	assert.True(t, allocation.NoData)
}

func TestComposeRiskProfileDefaultsTolerance(t *testing.T) {
	bundle, err := seededComposer(t).Compose(nlu.IntentRiskProfileQuery, nlu.Slots{})
	require.NoError(t, err)
	require.NotEmpty(t, bundle.Investments)
	for _, inv := range bundle.Investments {
		assert.NotEmpty(t, inv.Type)
		assert.NotEmpty(t, inv.ExpectedReturn)
		assert.NotEmpty(t, inv.RiskRating)
	}
}

func TestComposeComparison(t *testing.T) {
	bundle, err := seededComposer(t).Compose(nlu.IntentAssetComparison, nlu.Slots{Symbol: "bitcoin"})
	require.NoError(t, err)

	comparison := bundle.Categories[CategoryComparison]
	require.Len(t, comparison.Values, 1)
	assert.Equal(t, "bitcoin_vs_sp500", comparison.Values[0].Subject)

	metrics := bundle.Categories[CategoryAssetMetrics]
	require.Len(t, metrics.Values, 2)
	assert.Equal(t, "volatility", metrics.Values[0].Subject)
	assert.Equal(t, "60", metrics.Values[0].Value)
}

func TestComposeAgeStrategy(t *testing.T) {
	bundle, err := seededComposer(t).Compose(nlu.IntentAllocationByAge, nlu.Slots{Age: 28})
	require.NoError(t, err)

	strategy := bundle.Categories[CategoryAgeStrategy]
	require.Len(t, strategy.Values, 1)
	assert.Equal(t, "20s", strategy.Values[0].Subject)
	assert.Equal(t, 28, bundle.Slots.Age)
}

func TestComposeMistakes(t *testing.T) {
	bundle, err := seededComposer(t).Compose(nlu.IntentMistakeQuery, nlu.Slots{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(bundle.Categories[CategoryMistakes].Values), 4)
}

func TestComposeConversionRatesOnCurrencySlot(t *testing.T) {
	composer := seededComposer(t)

	bundle, err := composer.Compose(nlu.IntentMistakeQuery, nlu.Slots{Currency: "INR"})
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.Categories[CategoryConversionRates].Values)
	assert.Equal(t, "INR", bundle.Slots.Currency)

	bundle, err = composer.Compose(nlu.IntentMistakeQuery, nlu.Slots{})
	require.NoError(t, err)
	_, ok := bundle.Categories[CategoryConversionRates]
	assert.False(t, ok, "conversion rates are only composed when a currency was asked about")
}

func TestComposeUnsupportedIntent(t *testing.T) {
	_, err := seededComposer(t).Compose(nlu.IntentTradeCommand, nlu.Slots{})
	require.ErrorIs(t, err, ErrUnsupportedIntent)

	_, err = seededComposer(t).Compose(nlu.IntentUnclassified, nlu.Slots{})
	require.ErrorIs(t, err, ErrUnsupportedIntent)
}

func TestDecadeBucket(t *testing.T) {
	assert.Equal(t, "", decadeBucket(0))
	assert.Equal(t, "20s", decadeBucket(19))
	assert.Equal(t, "20s", decadeBucket(28))
	assert.Equal(t, "40s", decadeBucket(45))
	assert.Equal(t, "60s", decadeBucket(88))
}
