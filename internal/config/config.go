// Package config предоставляет загрузку конфигурации приложения из переменных окружения.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// Config содержит все параметры конфигурации приложения.
// Значения загружаются из переменных окружения с fallback на значения по умолчанию.
type Config struct {
	ElasticsearchURL     string        // URL для подключения к Elasticsearch/OpenSearch
	RecommendationsIndex string        // Индекс для снимков рекомендаций
	PostgresHost         string        // Хост PostgreSQL
	PostgresPort         string        // Порт PostgreSQL
	PostgresUser         string        // Пользователь PostgreSQL
	PostgresPassword     string        // Пароль PostgreSQL
	PostgresDB           string        // Имя базы данных PostgreSQL
	AppPort              string        // Порт для HTTP сервера
	RequestTimeout       time.Duration // Дедлайн на один запрос к хранилищам
	ReportLocale         string        // Локаль для форматирования чисел в текстах рекомендаций
	MaxOpenConns         int           // Размер пула соединений PostgreSQL
}

// Load загружает конфигурацию из переменных окружения.
// Если переменная не установлена, используется значение по умолчанию.
func Load() *Config {
	return &Config{
		ElasticsearchURL:     getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		RecommendationsIndex: getEnv("RECOMMENDATIONS_INDEX", "branch_recommendations"),
		PostgresHost:         getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:         getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:         getEnv("POSTGRES_USER", "analytics_user"),
		PostgresPassword:     getEnv("POSTGRES_PASSWORD", "analytics_pass"),
		PostgresDB:           getEnv("POSTGRES_DB", "branch_analytics"),
		AppPort:              getEnv("APP_PORT", "8080"),
		RequestTimeout:       getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
		ReportLocale:         getEnv("REPORT_LOCALE", "en"),
		MaxOpenConns:         getIntEnv("POSTGRES_MAX_OPEN_CONNS", 10),
	}
}

// PostgresDSN собирает строку подключения в формате lib/pq.
func (c *Config) PostgresDSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=disable"
}

// ReportLanguage разбирает ReportLocale. При некорректной локали возвращает
// английский язык вместе с ошибкой, чтобы вызывающий код мог записать предупреждение.
func (c *Config) ReportLanguage() (language.Tag, error) {
	tag, err := language.Parse(c.ReportLocale)
	if err != nil {
		return language.English, fmt.Errorf("failed to parse report locale %q: %w", c.ReportLocale, err)
	}
	return tag, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
