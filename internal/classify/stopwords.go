package classify

// stopwords are tokens the fallback extractor never treats as a coin name.
// The set mixes English function words with query vocabulary that routinely
// precedes or follows a coin mention.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// function words
		"the", "and", "for", "with", "this", "that", "these", "those",
		"are", "was", "were", "been", "being", "have", "has", "had",
		"will", "would", "could", "should", "might", "may", "can",
		"must", "shall", "does", "did", "not", "yes", "you", "your",
		"our", "their", "its", "his", "her", "who", "whom", "whose",
		"which", "what", "when", "where", "why", "how", "all", "any",
		"both", "each", "few", "more", "most", "other", "some", "such",
		"too", "very", "just", "now", "out", "over", "under", "again",
		"then", "than", "once", "about", "into", "from", "but", "nor",
		// query vocabulary
		"price", "cost", "current", "value", "trading", "market", "cap",
		"volume", "worth", "show", "much", "many", "tell", "give", "get",
		"latest", "recent", "news", "rumor", "sentiment", "twitter",
		"tweet", "social", "community", "hype", "buzz", "vibe", "whale",
		"smart", "money", "flow", "flows", "netflow", "wallet",
		"transfer", "movement", "accumulation", "distribution",
		"performance", "performing", "doing", "chart", "data", "last",
		"days", "hours", "hour", "week", "month", "today", "yesterday",
		"change", "gain", "loss", "return", "pumping", "dumping",
		"buy", "sell", "hold", "invest", "update", "overview",
		"summary", "coin", "coins", "crypto", "token", "tokens",
		"blockchain", "defi", "nft", "altcoin", "staking", "airdrop",
		"hows", "whats", "thats", "going", "look", "looking", "like",
		"think", "happening", "analysis", "onchain",
	} {
		stopwords[w] = struct{}{}
	}
}
