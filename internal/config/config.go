package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the screening service
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string

	// Screening engine
	DataPath       string // curated Q-Chat-10 training CSV
	ModelPath      string // persisted classifier artifact
	QChatThreshold int    // rule label is YES strictly above this score
	StrictAnswers  bool   // fail on malformed answers instead of defaulting to "never"

	// Clinician auth
	JWTSecret         string
	ClinicianUsername string
	ClinicianPassword string
}

// Load reads configuration from the environment, honoring a local .env file if present
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded settings from .env")
	}

	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "asdscreen"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:  getEnv("PORT", "8080"),

		DataPath:       getEnv("DATA_PATH", "datasets/toddler_autism_jul2018.csv"),
		ModelPath:      getEnv("MODEL_PATH", "models/asd_forest.json"),
		QChatThreshold: getEnvInt("QCHAT_THRESHOLD", 4),
		StrictAnswers:  getEnvBool("STRICT_ANSWERS", true),

		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		ClinicianUsername: getEnv("CLINICIAN_USERNAME", "admin"),
		ClinicianPassword: getEnv("CLINICIAN_PASSWORD", "password123"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, val, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("Warning: %s=%q is not a boolean, using %v", key, val, defaultVal)
		return defaultVal
	}
	return b
}
