package domain

import (
	"sort"
	"strings"
)

// CanonicalTicker maps lowercased coin names and tickers to the canonical
// user-facing ticker. Keys are single whole words; multi-word names are
// entered by their distinctive word ("shiba", "axie"). Common English words
// that collide with tickers ("flow", "icon", "rose") are deliberately absent
// so keyword extraction does not misfire on ordinary sentences.
var CanonicalTicker = map[string]string{
	"btc": "BTC", "bitcoin": "BTC", "xbt": "BTC",
	"eth": "ETH", "ethereum": "ETH", "ether": "ETH",
	"usdt": "USDT", "tether": "USDT",
	"usdc": "USDC",
	"bnb": "BNB",
	"sol": "SOL", "solana": "SOL",
	"xrp": "XRP", "ripple": "XRP",
	"ada": "ADA", "cardano": "ADA",
	"doge": "DOGE", "dogecoin": "DOGE",
	"trx": "TRX", "tron": "TRX",
	"avax": "AVAX", "avalanche": "AVAX",
	"shib": "SHIB", "shiba": "SHIB",
	"link": "LINK", "chainlink": "LINK",
	"dot": "DOT", "polkadot": "DOT",
	"matic": "MATIC", "polygon": "MATIC",
	"ton": "TON", "toncoin": "TON",
	"ltc": "LTC", "litecoin": "LTC",
	"bch": "BCH",
	"near": "NEAR",
	"uni": "UNI", "uniswap": "UNI",
	"icp": "ICP",
	"apt": "APT", "aptos": "APT",
	"xlm": "XLM", "stellar": "XLM",
	"fil": "FIL", "filecoin": "FIL",
	"atom": "ATOM", "cosmos": "ATOM",
	"arb": "ARB", "arbitrum": "ARB",
	"optimism": "OP",
	"hbar": "HBAR", "hedera": "HBAR",
	"vet": "VET", "vechain": "VET",
	"imx": "IMX",
	"inj": "INJ", "injective": "INJ",
	"grt": "GRT",
	"rune": "RUNE", "thorchain": "RUNE",
	"ftm": "FTM", "fantom": "FTM",
	"algo": "ALGO", "algorand": "ALGO",
	"qnt": "QNT", "quant": "QNT",
	"egld": "EGLD", "multiversx": "EGLD", "elrond": "EGLD",
	"sand": "SAND", "sandbox": "SAND",
	"mana": "MANA", "decentraland": "MANA",
	"axs": "AXS", "axie": "AXS",
	"aave": "AAVE",
	"eos": "EOS",
	"xtz": "XTZ", "tezos": "XTZ",
	"theta": "THETA",
	"chz": "CHZ", "chiliz": "CHZ",
	"cake": "CAKE", "pancakeswap": "CAKE",
	"cro": "CRO", "cronos": "CRO",
	"zec": "ZEC", "zcash": "ZEC",
	"dash": "DASH",
	"neo": "NEO",
	"miota": "IOTA", "iota": "IOTA",
	"xmr": "XMR", "monero": "XMR",
	"mkr": "MKR", "maker": "MKR",
	"snx": "SNX", "synthetix": "SNX",
	"crv": "CRV", "curve": "CRV",
	"ldo": "LDO", "lido": "LDO",
	"comp": "COMP", "compound": "COMP",
	"sushi": "SUSHI", "sushiswap": "SUSHI",
	"yfi": "YFI", "yearn": "YFI",
	"bat": "BAT",
	"enj": "ENJ", "enjin": "ENJ",
	"zil": "ZIL", "zilliqa": "ZIL",
	"ksm": "KSM", "kusama": "KSM",
	"waves": "WAVES",
	"mina": "MINA",
	"kava": "KAVA",
	"celo": "CELO",
	"arweave": "AR",
	"hnt": "HNT", "helium": "HNT",
	"stx": "STX", "stacks": "STX",
	"pepe": "PEPE",
	"wif": "WIF", "dogwifhat": "WIF",
	"bonk": "BONK",
	"floki": "FLOKI",
	"sei": "SEI",
	"sui": "SUI",
	"tia": "TIA", "celestia": "TIA",
	"jup": "JUP", "jupiter": "JUP",
	"pyth": "PYTH",
	"wld": "WLD", "worldcoin": "WLD",
	"ena": "ENA",
	"ondo": "ONDO",
	"strk": "STRK", "starknet": "STRK",
	"blur": "BLUR",
	"apecoin": "APE",
	"gala": "GALA",
	"rndr": "RNDR", "render": "RNDR",
	"fet": "FET",
	"agix": "AGIX", "singularitynet": "AGIX",
	"ocean": "OCEAN",
	"rpl": "RPL", "rocketpool": "RPL",
	"gmx": "GMX",
	"dydx": "DYDX",
	"ens": "ENS",
	"lrc": "LRC", "loopring": "LRC",
	"zrx": "ZRX",
	"qtum": "QTUM",
	"ont": "ONT", "ontology": "ONT",
	"icx": "ICX",
	"rvn": "RVN", "ravencoin": "RVN",
	"dgb": "DGB", "digibyte": "DGB",
	"zen": "ZEN", "horizen": "ZEN",
	"ankr": "ANKR",
	"storj": "STORJ",
	"skl": "SKL", "skale": "SKL",
	"mask": "MASK",
	"band": "BAND",
	"nmr": "NMR", "numeraire": "NMR",
	"knc": "KNC", "kyber": "KNC",
	"raydium": "RAY",
	"srm": "SRM", "serum": "SRM",
}

// CoinGeckoID maps canonical tickers to the provider's coin identifier for
// symbols the assistant resolves most often. Anything absent falls back to
// the provider's search endpoint.
var CoinGeckoID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"USDC":  "usd-coin",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"TRX":   "tron",
	"AVAX":  "avalanche-2",
	"SHIB":  "shiba-inu",
	"LINK":  "chainlink",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"TON":   "the-open-network",
	"LTC":   "litecoin",
	"BCH":   "bitcoin-cash",
	"NEAR":  "near",
	"UNI":   "uniswap",
	"ICP":   "internet-computer",
	"APT":   "aptos",
	"XLM":   "stellar",
	"FIL":   "filecoin",
	"ATOM":  "cosmos",
	"ARB":   "arbitrum",
	"OP":    "optimism",
	"HBAR":  "hedera-hashgraph",
	"VET":   "vechain",
	"IMX":   "immutable-x",
	"INJ":   "injective-protocol",
	"GRT":   "the-graph",
	"RUNE":  "thorchain",
	"FTM":   "fantom",
	"ALGO":  "algorand",
	"QNT":   "quant-network",
	"EGLD":  "elrond-erd-2",
	"SAND":  "the-sandbox",
	"MANA":  "decentraland",
	"AXS":   "axie-infinity",
	"AAVE":  "aave",
	"EOS":   "eos",
	"XTZ":   "tezos",
	"THETA": "theta-token",
	"CHZ":   "chiliz",
	"CAKE":  "pancakeswap-token",
	"CRO":   "crypto-com-chain",
	"ZEC":   "zcash",
	"DASH":  "dash",
	"NEO":   "neo",
	"IOTA":  "iota",
	"XMR":   "monero",
	"MKR":   "maker",
	"SNX":   "havven",
	"CRV":   "curve-dao-token",
	"LDO":   "lido-dao",
	"COMP":  "compound-governance-token",
	"SUSHI": "sushi",
	"YFI":   "yearn-finance",
	"BAT":   "basic-attention-token",
	"PEPE":  "pepe",
	"WIF":   "dogwifcoin",
	"BONK":  "bonk",
	"FLOKI": "floki",
	"SEI":   "sei-network",
	"SUI":   "sui",
	"TIA":   "celestia",
	"JUP":   "jupiter-exchange-solana",
	"PYTH":  "pyth-network",
	"WLD":   "worldcoin-wld",
	"APE":   "apecoin",
	"GALA":  "gala",
	"RNDR":  "render-token",
	"FET":   "fetch-ai",
	"GMX":   "gmx",
	"DYDX":  "dydx",
	"ENS":   "ethereum-name-service",
	"STX":   "blockstacks",
}

// SupportedTickers lists every canonical ticker in sorted order.
var SupportedTickers = func() []string {
	tickers := make([]string, 0, len(CoinGeckoID))
	for ticker := range CoinGeckoID {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}()

// ResolveTicker looks up a lowercased token in the coin dictionary. The match
// is whole-word by construction: callers pass individual tokens.
func ResolveTicker(token string) (string, bool) {
	ticker, ok := CanonicalTicker[strings.ToLower(strings.TrimSpace(token))]
	return ticker, ok
}
