package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"

	StorageDriverCloudinary = "cloudinary"
	StorageDriverS3         = "s3"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	StoreDriver string
	DatabaseURL string
	MongoURI    string
	MongoDBName string
	RedisURL    string

	JWTSecret string
	JWTTTL    time.Duration

	ClassifierURL     string
	ClassifierTimeout time.Duration
	MaxUploadBytes    int64

	PointsPerClassification int
	CatalogPath             string

	StorageDriver          string
	CloudinaryUploadFolder string
	S3Bucket               string
	S3Region               string
	S3Endpoint             string
	S3AccessKeyID          string
	S3SecretAccessKey      string
	S3PublicBaseURL        string

	MeiliSearchHost string
	MeiliMasterKey  string

	RateLimitClassify time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "5001"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDBName: getEnv("MONGO_DB_NAME", "ecoinsight"),
		RedisURL:    os.Getenv("REDIS_URL"),

		// An empty secret is reported per request as a configuration error.
		JWTSecret: os.Getenv("JWT_SECRET"),

		ClassifierURL: getEnv("CLASSIFIER_URL", "http://127.0.0.1:5000/predict"),
		CatalogPath:   os.Getenv("CATALOG_PATH"),

		StorageDriver:          strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverCloudinary)),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "ecoinsight"),
		S3Bucket:               os.Getenv("S3_BUCKET"),
		S3Region:               getEnv("S3_REGION", "auto"),
		S3Endpoint:             os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:          os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey:      os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3PublicBaseURL:        os.Getenv("S3_PUBLIC_BASE_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),
	}

	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.ClassifierTimeout, err = parseDuration(getEnv("CLASSIFIER_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLASSIFIER_TIMEOUT: %w", err)
	}
	cfg.RateLimitClassify, err = parseDuration(getEnv("RATE_LIMIT_CLASSIFY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CLASSIFY: %w", err)
	}

	cfg.PointsPerClassification, err = strconv.Atoi(getEnv("POINTS_PER_CLASSIFICATION", "10"))
	if err != nil || cfg.PointsPerClassification <= 0 {
		return nil, fmt.Errorf("invalid POINTS_PER_CLASSIFICATION: must be a positive integer")
	}

	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil || maxUploadMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: must be a positive integer")
	}
	cfg.MaxUploadBytes = maxUploadMB << 20

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store driver %q", c.StoreDriver)
		}
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.StorageDriver {
	case StorageDriverCloudinary:
	case StorageDriverS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
