package knowledge

// Seed returns the built-in financial fact set loaded when no facts
// file is configured. Relations referenced by the retrieval plans:
//
//   - risk_profile (multi-valued): tolerance -> investment type symbols
//   - expected_return, risk_rating, volatility: per investment type
//   - allocation: tolerance -> stock/bond/alternative split
//   - age_strategy: decade bucket -> allocation guidance
//   - comparison: asset pair -> prose comparison
//   - mistake: behavioral bias -> how to counter it
//   - principle: named investment principle -> prose
//   - asset_class: class -> prose description
//   - currency_name, conversion_rate: multi-currency support
func Seed() []AuthoredFact {
	return []AuthoredFact{
		// Risk profiles map a tolerance onto the investment types that
		// suit it. One tolerance yields many facts.
		{Relation: "risk_profile", Subject: "conservative", Kind: "symbol", Value: "bonds", MultiValued: true},
		{Relation: "risk_profile", Subject: "conservative", Kind: "symbol", Value: "blue_chip_stocks"},
		{Relation: "risk_profile", Subject: "moderate", Kind: "symbol", Value: "index_funds"},
		{Relation: "risk_profile", Subject: "moderate", Kind: "symbol", Value: "bonds"},
		{Relation: "risk_profile", Subject: "moderate", Kind: "symbol", Value: "real_estate"},
		{Relation: "risk_profile", Subject: "aggressive", Kind: "symbol", Value: "stocks"},
		{Relation: "risk_profile", Subject: "aggressive", Kind: "symbol", Value: "crypto"},

		{Relation: "expected_return", Subject: "bonds", Kind: "text", Value: "3-5% annually"},
		{Relation: "expected_return", Subject: "blue_chip_stocks", Kind: "text", Value: "6-8% annually"},
		{Relation: "expected_return", Subject: "index_funds", Kind: "text", Value: "8-10%"},
		{Relation: "expected_return", Subject: "real_estate", Kind: "text", Value: "7-9% with rental income"},
		{Relation: "expected_return", Subject: "stocks", Kind: "text", Value: "10-12% annually"},
		{Relation: "expected_return", Subject: "crypto", Kind: "text", Value: "30-40% with extreme drawdowns"},

		{Relation: "risk_rating", Subject: "bonds", Kind: "text", Value: "low"},
		{Relation: "risk_rating", Subject: "blue_chip_stocks", Kind: "text", Value: "low-moderate"},
		{Relation: "risk_rating", Subject: "index_funds", Kind: "text", Value: "moderate"},
		{Relation: "risk_rating", Subject: "real_estate", Kind: "text", Value: "moderate"},
		{Relation: "risk_rating", Subject: "stocks", Kind: "text", Value: "moderate-high"},
		{Relation: "risk_rating", Subject: "crypto", Kind: "text", Value: "very high"},

		{Relation: "volatility", Subject: "bitcoin", Kind: "scalar", Value: "60"},
		{Relation: "volatility", Subject: "ethereum", Kind: "scalar", Value: "65"},
		{Relation: "volatility", Subject: "solana", Kind: "scalar", Value: "70"},
		{Relation: "volatility", Subject: "sp500", Kind: "scalar", Value: "15"},
		{Relation: "volatility", Subject: "stocks", Kind: "scalar", Value: "25"},
		{Relation: "volatility", Subject: "bonds", Kind: "scalar", Value: "5"},

		{Relation: "expected_return", Subject: "bitcoin", Kind: "text", Value: "35% average with 60% volatility"},
		{Relation: "expected_return", Subject: "ethereum", Kind: "text", Value: "30% average with 65% volatility"},
		{Relation: "expected_return", Subject: "solana", Kind: "text", Value: "40% average with 70% volatility"},
		{Relation: "expected_return", Subject: "sp500", Kind: "text", Value: "10% average with 15% volatility"},

		{Relation: "allocation", Subject: "conservative", Kind: "text", Value: "20/70/10 stocks/bonds/alternatives"},
		{Relation: "allocation", Subject: "moderate", Kind: "text", Value: "60/30/10 stocks/bonds/alternatives"},
		{Relation: "allocation", Subject: "aggressive", Kind: "text", Value: "80/15/5 stocks/bonds/alternatives"},

		{Relation: "age_strategy", Subject: "20s", Kind: "text", Value: "Aggressive growth: 80-90% stocks and crypto, 10-20% bonds. A long horizon absorbs risk."},
		{Relation: "age_strategy", Subject: "30s", Kind: "text", Value: "Growth-focused: 70-80% stocks, 20-30% bonds. Balance growth with some stability."},
		{Relation: "age_strategy", Subject: "40s", Kind: "text", Value: "Balanced: 60% stocks, 30% bonds, 10% alternatives. Reduce risk as retirement nears."},
		{Relation: "age_strategy", Subject: "50s", Kind: "text", Value: "Conservative: 50% stocks, 40% bonds, 10% cash. Preserve capital for retirement."},
		{Relation: "age_strategy", Subject: "60s", Kind: "text", Value: "Capital preservation: 30% stocks, 50% bonds, 20% cash. Income over growth."},

		{Relation: "comparison", Subject: "bitcoin_vs_sp500", Kind: "text", Value: "Bitcoin: higher returns (35% avg) but 60% volatility. S&P 500: stable 10% returns with 15% volatility."},
		{Relation: "comparison", Subject: "crypto_vs_stocks", Kind: "text", Value: "Crypto offers explosive growth potential but extreme volatility. Stocks provide steady, proven returns."},
		{Relation: "comparison", Subject: "bonds_vs_stocks", Kind: "text", Value: "Bonds trade upside for stability; stocks carry drawdowns for long-run growth."},

		{Relation: "mistake", Subject: "loss_aversion", Kind: "text", Value: "Losses hurt twice as much as gains feel good. Set stop-losses before emotions decide."},
		{Relation: "mistake", Subject: "recency_bias", Kind: "text", Value: "Recent trends feel permanent. Markets are cyclical."},
		{Relation: "mistake", Subject: "herd_mentality", Kind: "text", Value: "FOMO drives bad entries. Stick to the plan."},
		{Relation: "mistake", Subject: "confirmation_bias", Kind: "text", Value: "We seek agreeing opinions. Actively read the opposing case."},
		{Relation: "mistake", Subject: "panic_selling", Kind: "text", Value: "Selling into a crash locks in the loss. Rebalance instead."},

		{Relation: "principle", Subject: "diversification", Kind: "text", Value: "Diversify across asset classes to reduce risk."},
		{Relation: "principle", Subject: "compounding", Kind: "text", Value: "Start early. Time in market beats timing the market."},
		{Relation: "principle", Subject: "risk_return", Kind: "text", Value: "Higher potential returns come with higher risk. Match investments to tolerance."},
		{Relation: "principle", Subject: "dollar_cost_averaging", Kind: "text", Value: "Invest fixed amounts regularly to average out volatility."},
		{Relation: "principle", Subject: "emergency_fund", Kind: "text", Value: "Keep six months of expenses in savings before aggressive investing."},

		{Relation: "asset_class", Subject: "stocks", Kind: "text", Value: "Growth potential with moderate-high risk. Historical 8-10% annual returns."},
		{Relation: "asset_class", Subject: "bonds", Kind: "text", Value: "Stability with lower returns. Good for conservative portfolios."},
		{Relation: "asset_class", Subject: "crypto", Kind: "text", Value: "High-risk, high-reward speculative assets. Very volatile."},
		{Relation: "asset_class", Subject: "index_funds", Kind: "text", Value: "Track market indices. Low fees, broad diversification."},
		{Relation: "asset_class", Subject: "real_estate", Kind: "text", Value: "Tangible assets with rental income. Requires significant capital."},

		{Relation: "currency_name", Subject: "usd", Kind: "text", Value: "US Dollar"},
		{Relation: "currency_name", Subject: "eur", Kind: "text", Value: "Euro"},
		{Relation: "currency_name", Subject: "inr", Kind: "text", Value: "Indian Rupee"},
		{Relation: "conversion_rate", Subject: "usd_inr", Kind: "scalar", Value: "83.5"},
		{Relation: "conversion_rate", Subject: "eur_inr", Kind: "scalar", Value: "91.2"},
		{Relation: "conversion_rate", Subject: "usd_eur", Kind: "scalar", Value: "0.92"},
	}
}
