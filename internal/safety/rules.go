package safety

// DefaultRuleset returns the built-in moderation tables. Terms are grouped
// by category so a rejection can report what tripped it.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Banned: map[string][]string{
			CategoryAdult: {
				"sexcoin", "titcoin", "porncoin", "clitcoin", "analcoin",
				"dickcoin", "pussycoin", "cumrocket", "cumcoin", "asscoin",
				"fapcoin", "boobcoin", "vaginacoin", "milfcoin", "hustlercoin",
				"xxxcoin", "porn", "sex", "rape", "child", "pedo", "incest",
				"loli", "lolita", "nsfw", "explicit", "nude", "nudes",
				"escort", "prostitute", "prostitution",
			},
			CategoryHate: {
				"nazi", "hitler", "kkk", "white power", "heil", "racist",
				"slur", "lynch", "genocide", "holocaust", "antisemitic",
				"antiblack", "antigay", "homophobic", "transphobic",
				"islamophobic", "hate crime",
			},
			CategoryViolence: {
				"terror", "terrorist", "bomb", "shoot", "murder", "kill",
				"assassinate", "massacre", "school shooting", "gun violence",
				"cocaine", "heroin", "fentanyl", "scam", "fraud", "hack",
				"exploit", "phishing", "malware", "ransomware", "darkweb",
				"dark web", "counterfeit", "money laundering", "launder",
				"human trafficking", "organ trafficking",
			},
		},
		Whitelist: map[string]struct{}{
			"hack":    {},
			"scam":    {},
			"fraud":   {},
			"exploit": {},
		},
		WhitelistContext: []string{
			"security", "audit", "vulnerability", "protection", "prevention",
			"detection", "analysis", "report", "news", "alert", "warning",
			"risk", "safety",
		},
		CryptoIndicators: []string{
			"price", "market", "cap", "volume", "change", "performance",
			"chart", "token", "coin", "crypto", "blockchain", "defi", "nft",
			"mining", "staking", "yield", "liquidity", "swap", "trade",
			"buy", "sell", "hodl", "moon", "pump", "dump", "bull", "bear",
			"altcoin", "meme", "tokenomics", "supply", "burn", "mint",
			"governance", "dao", "smart contract", "gas", "fee",
			"transaction", "wallet", "exchange", "dex", "cex", "bridge",
			"layer", "protocol", "dapp", "web3", "airdrop", "stablecoin",
			"validator", "node", "network", "rug pull", "honeypot",
			"flash loan", "reentrancy", "oracle", "audit", "security",
			"vulnerability", "exploit", "hack", "theft", "regulation",
			"compliance", "kyc", "aml", "volatility", "leverage", "margin",
			"short", "long", "futures", "perpetual", "bitcoin", "ethereum",
			"solana", "cardano", "polkadot", "avalanche", "polygon",
			"binance", "coinbase", "kraken", "coingecko", "coinmarketcap",
		},
		AmbiguousTerms: []string{
			"controversial", "taboo", "offensive", "inappropriate",
			"illegal", "banned", "forbidden", "unethical", "problematic",
			"hate", "adult",
		},
	}
}
