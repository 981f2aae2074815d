package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultActaBaseURL is the hosted vault API for the Stellar test network.
const DefaultActaBaseURL = "https://acta.build/api/testnet"

// Server captures process level configuration.
type Server struct {
	Addr        string
	Environment string

	Acta    Acta
	Wallet  Wallet
	Session Session

	// StateNamespace partitions persisted wallet and identity state so several
	// deployments can share one Redis or Postgres.
	StateNamespace string
	DatabaseURL    string
	Redis          RedisConfig
	Kafka          KafkaConfig
}

// Acta configures the vault/issuance API client.
type Acta struct {
	BaseURL        string
	APIKey         string
	ContractID     string
	RequestTimeout time.Duration
	// Breaker opens after this many consecutive failed calls.
	FailureThreshold int
	Cooldown         time.Duration
}

// Wallet configures the signing bridge that holds user wallets.
type Wallet struct {
	BridgeURL string
	Timeout   time.Duration
}

// Session configures wallet session tokens.
type Session struct {
	SigningKey string
	TTL        time.Duration
	Issuer     string
}

// RedisConfig configures the optional Redis-backed local state.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event sink.
type KafkaConfig struct {
	Brokers    string
	AuditTopic string
}

// ErrMissingAPIKey is returned when neither ACTA_API_KEY_TESTNET nor ACTA_API_KEY is set.
var ErrMissingAPIKey = errors.New("ACTA_API_KEY_TESTNET or ACTA_API_KEY must be set")

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:        getenv("ACTAVC_ADDR", ":8080"),
		Environment: getenv("ENVIRONMENT", "development"),
		Acta: Acta{
			BaseURL:          strings.TrimRight(getenv("ACTA_BASE_URL", DefaultActaBaseURL), "/"),
			APIKey:           firstNonEmpty(os.Getenv("ACTA_API_KEY_TESTNET"), os.Getenv("ACTA_API_KEY")),
			ContractID:       os.Getenv("ACTA_CONTRACT_ID"),
			RequestTimeout:   duration("ACTA_TIMEOUT", 30*time.Second),
			FailureThreshold: integer("ACTA_BREAKER_FAILURES", 5),
			Cooldown:         duration("ACTA_BREAKER_COOLDOWN", 30*time.Second),
		},
		Wallet: Wallet{
			BridgeURL: strings.TrimRight(getenv("WALLET_BRIDGE_URL", "http://localhost:8787"), "/"),
			Timeout:   duration("WALLET_BRIDGE_TIMEOUT", 2*time.Minute),
		},
		Session: Session{
			// Use a default for development - must be overridden in production
			SigningKey: getenv("SESSION_SIGNING_KEY", "dev-secret-key-change-in-production"),
			TTL:        duration("SESSION_TTL", 12*time.Hour),
			Issuer:     getenv("SESSION_ISSUER", "actavc"),
		},
		StateNamespace: getenv("STATE_NAMESPACE", "default"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: integer("REDIS_MIN_IDLE_CONNS", 1),
			DialTimeout:  duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    os.Getenv("KAFKA_BROKERS"),
			AuditTopic: getenv("AUDIT_TOPIC", "actavc.audit"),
		},
	}
}

// Validate rejects configurations the server cannot start with.
func (s Server) Validate() error {
	if s.Acta.APIKey == "" {
		return ErrMissingAPIKey
	}
	if s.Environment == "production" && s.Session.SigningKey == "dev-secret-key-change-in-production" {
		return errors.New("SESSION_SIGNING_KEY must be set in production")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func duration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func integer(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
