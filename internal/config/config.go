package config

import (
	"bufio"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

type Config struct {
	GeminiAPIKey     string
	Host             string
	Port             int
	Model            string
	BaseURL          string
	Temperature      float32
	MaxTokens        int
	ChatTimeout      time.Duration
	AgentCatalogFile string
	AllowedOrigins   []string
	TelegramToken    string
}

func Load(path string) (Config, error) {
	if err := loadDotEnv(path); err != nil {
		log.Printf("could not read .env: %v", err)
	}

	cfg := Config{
		Host:             getenvDefault("HOST", "127.0.0.1"),
		Port:             getenvIntDefault("PORT", 8000),
		Model:            getenvDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		BaseURL:          getenvDefault("GEMINI_BASE_URL", DefaultBaseURL),
		Temperature:      getenvFloatDefault("TEMPERATURE", 0.7),
		MaxTokens:        getenvIntDefault("MAX_TOKENS", 0),
		ChatTimeout:      time.Duration(getenvIntDefault("CHAT_TIMEOUT_SECONDS", 30)) * time.Second,
		AgentCatalogFile: os.Getenv("AGENT_CATALOG_FILE"),
		AllowedOrigins:   parseOrigins(getenvDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		return cfg, errors.New("GEMINI_API_KEY is required")
	}

	return cfg, nil
}

func parseOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		origins = append(origins, p)
	}
	return origins
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getenvFloatDefault(key string, def float32) float32 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Printf("invalid float for %s=%q, using default %v", key, v, def)
		return def
	}
	return float32(f)
}

func loadDotEnv(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, val)
		}
	}
	return scanner.Err()
}

func parseEnvLine(line string) (string, string, bool) {
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	val := strings.TrimSpace(parts[1])
	val = strings.Trim(val, `"'`)
	if key == "" {
		return "", "", false
	}
	return key, val, true
}
