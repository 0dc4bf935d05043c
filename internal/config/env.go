package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env carries the deployment-specific settings. Everything else lives in the
// consts file. A local .env is honored in development.
type Env struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":3000"`

	QdrantHost string `envconfig:"QDRANT_HOST" default:"127.0.0.1"`
	QdrantPort int    `envconfig:"QDRANT_PORT" default:"6334"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	SQLitePath string `envconfig:"SQLITE_PATH" default:"notebook.db"`
	UploadDir  string `envconfig:"UPLOAD_DIR" default:"uploads"`

	JWTSecret string `envconfig:"JWT_SECRET" default:""`

	// "google" or "openai"
	ModelProvider string `envconfig:"MODEL_PROVIDER" default:"google"`
	GoogleAPIKey  string `envconfig:"GOOGLE_API_KEY" default:""`
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" default:""`
}

var (
	env     Env
	envOnce sync.Once
	envErr  error
)

func GetEnv() (Env, error) {
	envOnce.Do(func() {
		_ = godotenv.Load() //missing .env is fine
		envErr = envconfig.Process("", &env)
	})
	return env, envErr
}
