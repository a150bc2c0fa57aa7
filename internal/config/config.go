package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	EventTopic    string
	TemplateFile  string
	QuestionsFile string
	MaxQuestions  int
	SessionTopics []string
	Environment   string
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine where the environment is set directly.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		KafkaBrokers:  splitEnv("KAFKA_BROKERS", ""),
		EventTopic:    getEnv("EVENT_TOPIC", "assessment-notifications"),
		TemplateFile:  getEnv("TEMPLATE_FILE", ""),
		QuestionsFile: getEnv("QUESTIONS_FILE", ""),
		MaxQuestions:  getEnvInt("MAX_QUESTIONS", 20),
		SessionTopics: splitEnv("SESSION_TOPICS", "aritmetica,algebra,geometria"),
		Environment:   getEnv("ENVIRONMENT", "development"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
