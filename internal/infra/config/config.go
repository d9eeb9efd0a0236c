// internal/infra/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Ledger modes.
const (
	ModeLocal = "local" // in-process bank
	ModeRPC   = "rpc"   // remote cluster over JSON-RPC
)

// Activity stores.
const (
	ActivityStoreMemory    = "memory"
	ActivityStoreFirestore = "firestore"
	ActivityStorePostgres  = "postgres"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config holds every environment-driven setting of the service.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	// Ledger
	Mode            string
	RPCURL          string
	ProgramID       string
	LedgerPath      string // bbolt file for local mode; empty keeps accounts in memory
	AirdropLamports uint64

	// Payer keypair: Secret Manager version path, or a solana-keygen JSON file.
	MintKeySecret string
	KeypairPath   string

	// GCP
	GCPProjectID             string
	GCSBucket                string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Activity log
	ActivityStore string
	DatabaseURL   string

	// Mail
	SendGridAPIKey  string
	MailFrom        string
	MailFromName    string
	ExplorerBaseURL string
	Cluster         string // explorer ?cluster= value; "mainnet-beta" omits it

	// HTTP
	AuthEnabled    bool
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxUploadBytes int64
}

// Load reads the environment and returns Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port:            getenvDefault("PORT", "8080"),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		Mode:            strings.ToLower(getenvDefault("SOLANA_MODE", ModeLocal)),
		RPCURL:          getenvDefault("SOLANA_RPC_URL", "https://api.devnet.solana.com"),
		ProgramID:       getenvDefault("NFT_PROGRAM_ID", "35GtXHKY4m9q9735friqSn8G73QYFZcBf5qzRp3bwGmV"),
		LedgerPath:      os.Getenv("LEDGER_PATH"),
		AirdropLamports: uint64(getenvInt("LOCAL_AIRDROP_LAMPORTS", 100_000_000_000)),

		MintKeySecret: os.Getenv("SOLANA_MINT_KEY_SECRET"),
		KeypairPath:   os.Getenv("SOLANA_KEYPAIR_PATH"),

		GCPProjectID:             defaultProject,
		GCSBucket:                os.Getenv("GCS_BUCKET"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		ActivityStore: strings.ToLower(getenvDefault("ACTIVITY_STORE", ActivityStoreMemory)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		MailFrom:        os.Getenv("MAIL_FROM"),
		MailFromName:    getenvDefault("MAIL_FROM_NAME", "NFT Certification"),
		ExplorerBaseURL: getenvDefault("EXPLORER_BASE_URL", "https://explorer.solana.com"),
		Cluster:         getenvDefault("SOLANA_CLUSTER", "devnet"),

		AuthEnabled:    getenvBool("AUTH_ENABLED", false),
		AllowedOrigins: splitCSV(getenvDefault("ALLOWED_ORIGINS", "*")),
		RateLimitRPS:   getenvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getenvInt("RATE_LIMIT_BURST", 10),
		MaxUploadBytes: int64(getenvInt("MAX_UPLOAD_BYTES", 10<<20)),
	}
}

// Validate checks combinations Load cannot express with defaults.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeLocal:
	case ModeRPC:
		if c.MintKeySecret == "" && c.KeypairPath == "" {
			return fmt.Errorf("%w: rpc mode needs SOLANA_MINT_KEY_SECRET or SOLANA_KEYPAIR_PATH", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: SOLANA_MODE=%q", ErrInvalidConfig, c.Mode)
	}
	switch c.ActivityStore {
	case ActivityStoreMemory:
	case ActivityStoreFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("%w: firestore activity store needs FIRESTORE_PROJECT_ID", ErrInvalidConfig)
		}
	case ActivityStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: postgres activity store needs DATABASE_URL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: ACTIVITY_STORE=%q", ErrInvalidConfig, c.ActivityStore)
	}
	if c.AuthEnabled && c.FirebaseProjectID == "" {
		return fmt.Errorf("%w: AUTH_ENABLED needs FIREBASE_PROJECT_ID", ErrInvalidConfig)
	}
	return nil
}

// MailEnabled is true when both the API key and sender are set.
func (c *Config) MailEnabled() bool {
	return c.SendGridAPIKey != "" && c.MailFrom != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
