package cfg

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http     *HTTPConfig
	Grpc     *GRPCConfig
	Bakery   *BakeryAPICfg
	Catalog  *CatalogCfg
	Checkout *CheckoutCfg
	Session  *SessionCfg
	Redis    *RedisCfg
	Kafka    *KafkaCfg // nil, если публикация событий отключена
}

type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

// BakeryAPICfg описывает подключение к API пекарни
type BakeryAPICfg struct {
	BaseURL      string        // Адрес API пекарни, например http://localhost:3000
	Timeout      time.Duration // Таймаут одного HTTP-запроса
	MaxAttempts  int           // Общее число попыток: 2 = один автоматический повтор
	RetryBackoff time.Duration // Базовая задержка перед повтором
}

type CatalogCfg struct {
	StaleTime       time.Duration // Время, в течение которого каталог считается свежим
	RefreshInterval time.Duration // Интервал фонового обновления, 0 отключает обновление
}

// CheckoutCfg описывает отправку заказа. Отправка не зависит от запроса покупателя
// и ограничена только SubmitTimeout.
type CheckoutCfg struct {
	SubmitTimeout time.Duration
}

type SessionCfg struct {
	TTL           time.Duration // Время жизни неактивной сессии
	SweepInterval time.Duration
}

type RedisCfg struct {
	Enabled     bool
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	bakery, err := loadBakeryAPICfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, err := loadCatalogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	checkout, err := loadCheckoutCfg(log, bakery)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:     http,
		Grpc:     loadGRPCConfig(),
		Bakery:   bakery,
		Catalog:  catalog,
		Checkout: checkout,
		Session:  session,
		Redis:    redis,
		Kafka:    kafka,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort           = "8080"
		defaultReadTimeout    = 5 * time.Second
		defaultWriteTimeout   = 30 * time.Second
		defaultIdleTimeout    = 60 * time.Second
		defaultRequestTimeout = 25 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	requestTimeout, err := parseDurationEnv("HTTP_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_REQUEST_TIMEOUT")
		return nil, err
	}

	return &HTTPConfig{
		Port:           port,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		RequestTimeout: requestTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadBakeryAPICfg(log logger.Logger) (*BakeryAPICfg, error) {
	const (
		defaultBaseURL      = "http://localhost:3000"
		defaultTimeout      = 10 * time.Second
		defaultMaxAttempts  = 2
		defaultRetryBackoff = 200 * time.Millisecond
	)

	baseURL := strings.TrimRight(getEnvOrDefault("BAKERY_API_URL", defaultBaseURL), "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		log.Errorf(err, "invalid BAKERY_API_URL")
		return nil, e.Wrap(baseURL, e.ErrBakeryURLRequired)
	}

	timeout, err := parseDurationEnv("BAKERY_API_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid BAKERY_API_TIMEOUT")
		return nil, err
	}

	backoff, err := parseDurationEnv("BAKERY_API_RETRY_BACKOFF", defaultRetryBackoff)
	if err != nil {
		log.Errorf(err, "invalid BAKERY_API_RETRY_BACKOFF")
		return nil, err
	}

	return &BakeryAPICfg{
		BaseURL:      baseURL,
		Timeout:      timeout,
		MaxAttempts:  defaultMaxAttempts,
		RetryBackoff: backoff,
	}, nil
}

func loadCatalogCfg(log logger.Logger) (*CatalogCfg, error) {
	const (
		defaultStaleTime       = 5 * time.Minute
		defaultRefreshInterval = time.Minute
	)

	staleTime, err := parseDurationEnv("CATALOG_STALE_TIME", defaultStaleTime)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_STALE_TIME")
		return nil, err
	}

	refresh, err := parseDurationEnv("CATALOG_REFRESH_INTERVAL", defaultRefreshInterval)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_REFRESH_INTERVAL")
		return nil, err
	}

	return &CatalogCfg{
		StaleTime:       staleTime,
		RefreshInterval: refresh,
	}, nil
}

// loadCheckoutCfg по умолчанию даёт отправке время на все попытки и задержки между ними.
func loadCheckoutCfg(log logger.Logger, bakery *BakeryAPICfg) (*CheckoutCfg, error) {
	const backoffAllowance = 5 * time.Second

	defaultTimeout := bakery.Timeout*time.Duration(bakery.MaxAttempts) + backoffAllowance

	timeout, err := parseDurationEnv("CHECKOUT_SUBMIT_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid CHECKOUT_SUBMIT_TIMEOUT")
		return nil, err
	}

	return &CheckoutCfg{
		SubmitTimeout: timeout,
	}, nil
}

func loadSessionCfg(log logger.Logger) (*SessionCfg, error) {
	const (
		defaultTTL           = 30 * time.Minute
		defaultSweepInterval = time.Minute
	)

	ttl, err := parseDurationEnv("SESSION_TTL", defaultTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	sweep, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		log.Errorf(err, "invalid SESSION_SWEEP_INTERVAL")
		return nil, err
	}

	return &SessionCfg{
		TTL:           ttl,
		SweepInterval: sweep,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultEnabled      = true
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProductTTL   = 3 * time.Minute
	)

	enabled, err := strconv.ParseBool(getEnvOrDefault("REDIS_ENABLED", strconv.FormatBool(defaultEnabled)))
	if err != nil {
		log.Errorf(err, "invalid REDIS_ENABLED")
		return nil, err
	}

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	productTTL, err := parseDurationEnv("PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Enabled:     enabled,
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ProductTTL:  productTTL,
	}, nil
}

// loadKafkaCfg возвращает nil, если KAFKA_BROKERS не задан: публикация событий о заказах отключена.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic             = "storefront.orders"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}

	brokers := make([]string, 0)
	for _, b := range strings.Split(brokerStr, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS contains no brokers")
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
