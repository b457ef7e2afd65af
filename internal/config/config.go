package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPPort    string
	DatabaseURL string
	RedisURL    string

	GrokAPIKey  string
	GrokModel   string
	GrokBaseURL string

	CoinGeckoAPIKey    string
	NansenAPIKey       string
	TwitterBearerToken string

	TelegramBotToken string

	SSHBind        string
	SSHPort        int
	SSHHostKeyPath string

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRateLimitPerMin    int
	MCPRequestTimeoutSecs int

	ProviderTimeoutSecs  int
	ProviderMaxRetries   int
	ProviderCacheSecs    int
	AssistantMaxHistory  int
	AssistantMaxParallel int
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		GrokAPIKey:         os.Getenv("GROK_API_KEY"),
		CoinGeckoAPIKey:    os.Getenv("COINGECKO_API_KEY"),
		NansenAPIKey:       os.Getenv("NANSEN_API_KEY"),
		TwitterBearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		MCPAuthToken:       os.Getenv("MCP_AUTH_TOKEN"),
	}

	cfg.HTTPPort = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, conversation persistence disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	if cfg.GrokAPIKey == "" {
		log.Println("Warning: GROK_API_KEY not set, replies fall back to data summaries")
	}
	cfg.GrokModel = strings.TrimSpace(os.Getenv("GROK_MODEL"))
	if cfg.GrokModel == "" {
		cfg.GrokModel = "grok-4"
	}
	cfg.GrokBaseURL = strings.TrimSpace(os.Getenv("GROK_BASE_URL"))
	if cfg.GrokBaseURL == "" {
		cfg.GrokBaseURL = "https://api.x.ai/v1"
	}

	if cfg.CoinGeckoAPIKey == "" {
		log.Println("Warning: COINGECKO_API_KEY not set, using public rate limits")
	}
	if cfg.NansenAPIKey == "" {
		log.Println("Warning: NANSEN_API_KEY not set, smart money data disabled")
	}
	if cfg.TwitterBearerToken == "" {
		log.Println("Warning: TWITTER_BEARER_TOKEN not set, social sentiment disabled")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, telegram bot disabled")
	}

	cfg.SSHBind = strings.TrimSpace(os.Getenv("SSH_BIND"))
	if cfg.SSHBind == "" {
		cfg.SSHBind = "0.0.0.0"
	}
	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/naomi_ed25519"
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}
	cfg.MCPHTTPPort = 8090
	if v := strings.TrimSpace(os.Getenv("MCP_HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPHTTPPort = n
		}
	}
	cfg.MCPRateLimitPerMin = 60
	if v := strings.TrimSpace(os.Getenv("MCP_RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPRateLimitPerMin = n
		}
	}
	cfg.MCPRequestTimeoutSecs = 5
	if v := strings.TrimSpace(os.Getenv("MCP_REQUEST_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPRequestTimeoutSecs = n
		}
	}

	cfg.ProviderTimeoutSecs = 10
	if v := strings.TrimSpace(os.Getenv("PROVIDER_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ProviderTimeoutSecs = n
		}
	}
	cfg.ProviderMaxRetries = 3
	if v := strings.TrimSpace(os.Getenv("PROVIDER_MAX_RETRIES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ProviderMaxRetries = n
		}
	}
	cfg.ProviderCacheSecs = 300
	if v := strings.TrimSpace(os.Getenv("PROVIDER_CACHE_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ProviderCacheSecs = n
		}
	}

	cfg.AssistantMaxHistory = 10
	if v := strings.TrimSpace(os.Getenv("ASSISTANT_MAX_HISTORY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AssistantMaxHistory = n
		}
	}
	cfg.AssistantMaxParallel = 4
	if v := strings.TrimSpace(os.Getenv("ASSISTANT_MAX_PARALLEL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AssistantMaxParallel = n
		}
	}

	return cfg
}
