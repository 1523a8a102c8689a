package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultLimitComments = 20
	MaxLimitComments     = 100
	TypeaheadLimit       = 10
	RequestTimeout       = 5 * time.Second
)

type Config struct {
	MongoURI   string
	MongoDB    string
	Port       string
	JWTSecret  string
	JWTExpiry  time.Duration
	CORSOrigin string
	LogLevel   string

	// media storage: local | gridfs | s3 | gcs
	StorageDriver      string
	LocalStoragePath   string
	PublicMediaPrefix  string
	S3Region           string
	S3Bucket           string
	GCSBucketName      string
	GCSCredentialsFile string

	SeedCreatorName     string
	SeedCreatorEmail    string
	SeedCreatorPassword string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func LoadConfig() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := Config{
		MongoURI:   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGO_DB", "mini_instagram"),
		Port:       getEnv("PORT", "5000"),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTExpiry:  getDuration("JWT_EXPIRES_IN", 30*24*time.Hour),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		StorageDriver:      getEnv("STORAGE_DRIVER", "local"),
		LocalStoragePath:   getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		PublicMediaPrefix:  getEnv("PUBLIC_MEDIA_PREFIX", "/uploads"),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		GCSBucketName:      getEnv("GCS_BUCKET_NAME", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),

		SeedCreatorName:     getEnv("SEED_CREATOR_NAME", "Creator"),
		SeedCreatorEmail:    getEnv("SEED_CREATOR_EMAIL", "creator@mini.com"),
		SeedCreatorPassword: getEnv("SEED_CREATOR_PASSWORD", "creator123"),
	}
	return cfg
}
