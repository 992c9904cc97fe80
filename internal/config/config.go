package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bluntdao/blunt_frame/internal/chain"
)

const (
	defaultAppName           = "BluntFrame"
	defaultAppEnv            = "development"
	defaultPort              = "8080"
	defaultLogLevel          = "info"
	defaultPublicHost        = "http://localhost:8080"
	defaultNeynarBaseURL     = "https://api.neynar.com"
	defaultAlchemyBaseURL    = "https://eth-sepolia.g.alchemy.com"
	defaultHubURL            = "https://nemes.farcaster.xyz:2281"
	defaultCollection        = "0xBAE9dD42C2B69Cfa4D457384297Fcf6bec72C0c4"
	defaultRateLimit         = 30
	defaultShutdownDelay     = 10 * time.Second
	defaultClientTimeout     = 15 * time.Second
	shutdownSecondsEnvVar    = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar   = "SHUTDOWN_TIMEOUT"
	clientTimeoutSecondsVar  = "HTTP_CLIENT_TIMEOUT_SECONDS"
	clientTimeoutDurationVar = "HTTP_CLIENT_TIMEOUT"
	rateLimitEnvVar          = "RATE_LIMIT_PER_MINUTE"

	// AuthHub validates frame messages against a Farcaster hub.
	AuthHub = "hub"
	// AuthInsecure trusts the unsigned fid of the frame packet. Development only.
	AuthInsecure = "insecure"

	// OwnershipAlchemy reads owners from the Alchemy NFT API.
	OwnershipAlchemy = "alchemy"
	// OwnershipPostgres reads owners from an indexer table.
	OwnershipPostgres = "postgres"
	// OwnershipMemory uses an empty in-process owner list. Development only.
	OwnershipMemory = "memory"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName            string
	AppEnv             string
	Port               string
	LogLevel           string
	PublicHost         string
	NeynarAPIKey       string
	NeynarBaseURL      string
	AlchemyAPIKey      string
	AlchemyBaseURL     string
	HubURL             string
	FrameAuth          string
	OwnershipBackend   string
	CollectionAddress  string
	CollectionTokenIDs []string
	CatalogPath        string
	DatabaseURL        string
	RedisURL           string
	RateLimitPerMinute int
	ShutdownPeriod     time.Duration
	ClientTimeout      time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:            getEnv("APP_NAME", defaultAppName),
		AppEnv:             getEnv("APP_ENV", defaultAppEnv),
		Port:               getEnv("PORT", defaultPort),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		PublicHost:         strings.TrimRight(getEnv("PUBLIC_HOST", defaultPublicHost), "/"),
		NeynarAPIKey:       os.Getenv("NEYNAR_API_KEY"),
		NeynarBaseURL:      getEnv("NEYNAR_BASE_URL", defaultNeynarBaseURL),
		AlchemyAPIKey:      os.Getenv("ALCHEMY_API_KEY"),
		AlchemyBaseURL:     getEnv("ALCHEMY_BASE_URL", defaultAlchemyBaseURL),
		HubURL:             getEnv("HUB_URL", defaultHubURL),
		FrameAuth:          strings.ToLower(getEnv("FRAME_AUTH", AuthHub)),
		OwnershipBackend:   strings.ToLower(getEnv("OWNERSHIP_BACKEND", OwnershipAlchemy)),
		CollectionAddress:  getEnv("COLLECTION_ADDRESS", defaultCollection),
		CollectionTokenIDs: splitList(os.Getenv("COLLECTION_TOKEN_IDS")),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RateLimitPerMinute: defaultRateLimit,
		ShutdownPeriod:     defaultShutdownDelay,
		ClientTimeout:      defaultClientTimeout,
	}

	var err error
	if cfg.ShutdownPeriod, err = durationFromEnv(shutdownSecondsEnvVar, shutdownDurationEnvVar, cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.ClientTimeout, err = durationFromEnv(clientTimeoutSecondsVar, clientTimeoutDurationVar, cfg.ClientTimeout); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(rateLimitEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", rateLimitEnvVar, err)
		}
		cfg.RateLimitPerMinute = n
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.FrameAuth {
	case AuthHub, AuthInsecure:
	default:
		return fmt.Errorf("invalid FRAME_AUTH %q", c.FrameAuth)
	}
	switch c.OwnershipBackend {
	case OwnershipAlchemy, OwnershipPostgres, OwnershipMemory:
	default:
		return fmt.Errorf("invalid OWNERSHIP_BACKEND %q", c.OwnershipBackend)
	}

	if err := chain.ValidateAddress(c.CollectionAddress); err != nil {
		return fmt.Errorf("invalid COLLECTION_ADDRESS: %w", err)
	}

	if c.OwnershipBackend == OwnershipPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when OWNERSHIP_BACKEND=%s", OwnershipPostgres)
	}

	if c.IsDev() {
		return nil
	}
	if c.FrameAuth == AuthInsecure {
		return fmt.Errorf("FRAME_AUTH=%s is not allowed when APP_ENV=%s", AuthInsecure, c.AppEnv)
	}
	if c.OwnershipBackend == OwnershipMemory {
		return fmt.Errorf("OWNERSHIP_BACKEND=%s is not allowed when APP_ENV=%s", OwnershipMemory, c.AppEnv)
	}
	if c.NeynarAPIKey == "" {
		return fmt.Errorf("NEYNAR_API_KEY must be set")
	}
	if c.OwnershipBackend == OwnershipAlchemy && c.AlchemyAPIKey == "" {
		return fmt.Errorf("ALCHEMY_API_KEY must be set")
	}
	return nil
}

// IsDev reports whether the configured environment is a local development one.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func durationFromEnv(secondsKey, durationKey string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(secondsKey); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", secondsKey, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := os.Getenv(durationKey); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", durationKey, err)
		}
		return d, nil
	}
	return fallback, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
