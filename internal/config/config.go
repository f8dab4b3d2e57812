package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AgriVisionConfig struct {
	Port          string
	LogDir        string
	HTTPTimeout   time.Duration
	ClassifierCfg ClassifierConfig
	GeminiAPICfg  GeminiAPIConfig
	SpeechCfg     SpeechConfig
	YouTubeCfg    YouTubeConfig
	WeatherCfg    WeatherConfig
	LogFilesCfg   LogFilesConfig
	ExpertCfg     ExpertConfig
	WorkerCfg     WorkerConfig
	PostgresCfg   PostgresConfig
	RedisCfg      RedisConfig
	MinioCfg      MinioConfig
	RabbitMQCfg   RabbitMQConfig
}

type ClassifierConfig struct {
	ModelPath          string
	InferenceURL       string
	InferenceModelName string
}

type GeminiAPIConfig struct {
	APIKeys   []string
	ModelName string
}

type SpeechConfig struct {
	BaseURL string
	TempDir string
}

type YouTubeConfig struct {
	APIKey string
}

type WeatherConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

type LogFilesConfig struct {
	HistoryLogPath  string
	FeedbackLogPath string
}

type ExpertConfig struct {
	WhatsAppNumber string
}

type WorkerConfig struct {
	NumWorkers int
	QueueSize  int
}

type PostgresConfig struct {
	Enabled  bool
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	Enabled        bool
	MinioURL       string
	MinioAccessKey string
	MinioSecretKey string
	MinioLocation  string
	MinioSecure    string
}

type RabbitMQConfig struct {
	Enabled  bool
	Username string
	Password string
	Host     string
	Port     string
}

// New reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func New() *AgriVisionConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &AgriVisionConfig{
		Port:        getEnvOrDefault("PORT", "8090"),
		LogDir:      getEnvOrDefault("LOG_DIR", "log"),
		HTTPTimeout: time.Duration(getEnvIntOrDefault("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		ClassifierCfg: ClassifierConfig{
			ModelPath:          getEnvOrDefault("MODEL_PATH", "crop_final_model"),
			InferenceURL:       getEnvOrDefault("INFERENCE_URL", "http://localhost:8085"),
			InferenceModelName: getEnvOrDefault("INFERENCE_MODEL_NAME", "crop_final_model"),
		},
		GeminiAPICfg: GeminiAPIConfig{
			APIKeys:   splitList(getEnvOrDefault("GEMINI_KEY", "")),
			ModelName: getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		SpeechCfg: SpeechConfig{
			BaseURL: getEnvOrDefault("TTS_BASE_URL", "https://translate.google.com"),
			TempDir: getEnvOrDefault("TTS_TEMP_DIR", os.TempDir()),
		},
		YouTubeCfg: YouTubeConfig{
			APIKey: getEnvOrDefault("YOUTUBE_API_KEY", ""),
		},
		WeatherCfg: WeatherConfig{
			BaseURL:  getEnvOrDefault("WEATHER_BASE_URL", "https://api.open-meteo.com"),
			CacheTTL: time.Duration(getEnvIntOrDefault("WEATHER_CACHE_MINUTES", 30)) * time.Minute,
		},
		LogFilesCfg: LogFilesConfig{
			HistoryLogPath:  getEnvOrDefault("HISTORY_LOG_PATH", "history_log.csv"),
			FeedbackLogPath: getEnvOrDefault("FEEDBACK_LOG_PATH", "feedback_log.csv"),
		},
		ExpertCfg: ExpertConfig{
			WhatsAppNumber: getEnvOrDefault("EXPERT_WHATSAPP_NUMBER", "91XXXXXXXXXX"),
		},
		WorkerCfg: WorkerConfig{
			NumWorkers: getEnvIntOrDefault("WORKER_COUNT", 2),
			QueueSize:  getEnvIntOrDefault("WORKER_QUEUE_SIZE", 64),
		},
		PostgresCfg: PostgresConfig{
			Enabled:  getEnvBoolOrDefault("POSTGRES_ENABLED", false),
			DBname:   getEnvOrDefault("POSTGRES_DB", "agrivision"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Enabled:  getEnvBoolOrDefault("REDIS_ENABLED", false),
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		MinioCfg: MinioConfig{
			Enabled:        getEnvBoolOrDefault("MINIO_ENABLED", false),
			MinioURL:       getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9407"),
			MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:  getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:    getEnvOrDefault("MINIO_SECURE", "false"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Enabled:  getEnvBoolOrDefault("RABBITMQ_ENABLED", false),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
	}
}

// AdviceEnabled reports whether a chat credential is configured.
func (c *AgriVisionConfig) AdviceEnabled() bool {
	return len(c.GeminiAPICfg.APIKeys) > 0
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
