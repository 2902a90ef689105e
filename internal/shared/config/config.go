package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Model     ModelConfig
	Remote    RemoteConfig
	Knowledge KnowledgeConfig
	Auth      AuthConfig
	Cache     CacheConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

// ModelConfig holds paths to the exported local model artifacts.
type ModelConfig struct {
	// VectorizerPath is the exported TF-IDF vocabulary and IDF weights
	VectorizerPath string
	// ClassifierPath is the exported linear classifier (coefficients, intercepts, labels)
	ClassifierPath string
}

// RemoteConfig gates the remote model-serving path. The remote backend is
// used only when Host, Token and Endpoint are all present.
type RemoteConfig struct {
	// Host is the serving endpoint hostname
	Host string
	// Token is the bearer token sent with every request
	Token string
	// Endpoint is the deployed endpoint identifier
	Endpoint string
	// Timeout bounds each prediction request
	Timeout time.Duration
}

// Configured reports whether all three remote parameters are set.
func (r RemoteConfig) Configured() bool {
	return r.Host != "" && r.Token != "" && r.Endpoint != ""
}

// PartiallyConfigured reports a misconfigured remote path: some but not all
// parameters present. Startup must fail fast in that case instead of ever
// sending a malformed request.
func (r RemoteConfig) PartiallyConfigured() bool {
	return !r.Configured() && (r.Host != "" || r.Token != "" || r.Endpoint != "")
}

type KnowledgeConfig struct {
	// Path to the condition/supply-chain knowledge base JSON file
	Path string
}

type CacheConfig struct {
	// PredictionSize is the LRU capacity for narrative->prediction caching (0 disables)
	PredictionSize int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	// Enabled controls whether assessment history is recorded at all
	Enabled bool
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret string
}

func Load() (*Config, error) {
	// Optional .env for local development; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "lifeline"),
			Password: getEnv("DB_PASSWORD", "lifeline"),
			Database: getEnv("DB_NAME", "lifeline"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Enabled:  getEnvBool("HISTORY_ENABLED", true),
		},
		Model: ModelConfig{
			VectorizerPath: getEnv("MODEL_VECTORIZER_PATH", "artifacts/tfidf_vectorizer.json"),
			ClassifierPath: getEnv("MODEL_CLASSIFIER_PATH", "artifacts/condition_classifier.json"),
		},
		Remote: RemoteConfig{
			Host:     getEnv("SERVING_HOST", ""),
			Token:    getEnv("SERVING_TOKEN", ""),
			Endpoint: getEnv("SERVING_ENDPOINT", ""),
			Timeout:  time.Duration(getEnvInt("SERVING_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Knowledge: KnowledgeConfig{
			Path: getEnv("KNOWLEDGE_BASE_PATH", "data/lifeline_knowledge.json"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-prod"),
		},
		Cache: CacheConfig{
			PredictionSize: getEnvInt("PREDICTION_CACHE_SIZE", 512),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
