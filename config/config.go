package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config is populated from the environment (a .env file is loaded first if
// present). Secrets only ever come from env.
type Config struct {
	Port string `env:"PORT" env-default:"8080"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD" env-default:""`
	DBName     string `env:"DB_NAME" env-default:"foodvision"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`

	JWTSecret string `env:"JWT_SECRET"`

	// onnx runs the bundled model locally; rekognition calls AWS.
	ClassifierBackend string `env:"CLASSIFIER_BACKEND" env-default:"onnx"`
	ModelPath         string `env:"MODEL_PATH" env-default:"classification_models/food.onnx"`
	ModelMetadataPath string `env:"MODEL_METADATA_PATH" env-default:"classification_models/metadata.json"`

	AWSRegion string `env:"AWS_REGION" env-default:""`
	S3Bucket  string `env:"S3_BUCKET" env-default:""` // empty disables image archival

	// Calorie enrichment via an OpenAI-compatible endpoint. Empty base URL
	// disables enrichment entirely.
	CalorieAPIBase string `env:"CALORIE_API_BASE" env-default:""`
	CalorieAPIKey  string `env:"CALORIE_API_KEY" env-default:""`
	CalorieModel   string `env:"CALORIE_MODEL" env-default:"gpt-4o-mini"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" env-default:"52428800"`
	RatePerMinute  int   `env:"RATE_LIMIT_PER_MINUTE" env-default:"5"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() // optional .env for local runs

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// OpenDB connects to Postgres.
func OpenDB(c *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
