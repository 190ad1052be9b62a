package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type AirAPIConfig struct {
	BaseURL string
	Token   string
	Version string
}

type MySQLConfig struct {
	DSN string
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

type Config struct {
	AppEnv                string
	AppPort               string
	RedisConfig           RedisConfig
	AirAPIConfig          AirAPIConfig
	MySQLConfig           MySQLConfig
	Observability         ObservabilityConfig
	SearchCacheTTLMinutes int
	SessionTTLMinutes     int
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)
	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := mustEnv("REDIS_PASSWORD", &errs)

	airBaseURL := mustEnv("AIR_API_BASE_URL", &errs)
	// A missing credential must fail here, before any network call is attempted.
	airToken := mustEnv("AIR_API_TOKEN", &errs)
	airVersion := mustEnv("AIR_API_VERSION", &errs)

	mysqlDSN := mustEnv("MYSQL_DSN", &errs)

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "airbook"
	}

	searchTTL := mustEnvInt("SEARCH_CACHE_TTL_MINUTES", &errs)
	sessionTTL := mustEnvInt("SESSION_TTL_MINUTES", &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		RedisConfig: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		AirAPIConfig: AirAPIConfig{
			BaseURL: airBaseURL,
			Token:   airToken,
			Version: airVersion,
		},
		MySQLConfig: MySQLConfig{
			DSN: mysqlDSN,
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint: otlpEndpoint,
			ServiceName:  serviceName,
		},
		SearchCacheTTLMinutes: searchTTL,
		SessionTTLMinutes:     sessionTTL,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func mustEnvInt(key string, errs *[]error) int {
	raw := mustEnv(key, errs)
	value, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
	}
	return value
}
