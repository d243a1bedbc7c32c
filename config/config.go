package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gopkg.in/yaml.v3"
)

const (
	TopicOrders  = "orders"
	TopicRatings = "ratings"
)

// Catalog cache keys shared by menu-svc (reader/writer) and rate-svc
// (invalidator).
const (
	CacheKeyMenuItems  = "menu:items:all"
	CacheKeyCategories = "menu:categories"
)

// CatalogCacheTTL bounds how long a read-through fill that raced an
// invalidation can serve stale catalog data.
const CatalogCacheTTL = 30 * time.Second

func MenuItemCacheKey(id int) string {
	return "menu:item:" + strconv.Itoa(id)
}

// Leaderboard keys written by agg-svc and read by report-svc.
const KeyRatingsAllTime = "ratings:alltime"

func MenuItemStatsKey(id int) string {
	return "menu_item:" + strconv.Itoa(id)
}

// DailyPopularityKey holds quantities ordered per item name for one
// YYYY-MM-DD day.
func DailyPopularityKey(day string) string {
	return "orders:daily:" + day
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaConfig struct {
	Broker string `yaml:"broker"`
}

type Config struct {
	Postgres      PostgresConfig `yaml:"postgres"`
	Redis         RedisConfig    `yaml:"redis"`
	Kafka         KafkaConfig    `yaml:"kafka"`
	JWTSecret     string         `yaml:"jwt_secret"`
	StoreTimeout  string         `yaml:"store_timeout"`
	ReportTZ      string         `yaml:"report_timezone"`
	PublicBaseURL string         `yaml:"public_base_url"`
	UploadDir     string         `yaml:"upload_dir"`
}

func defaults() *Config {
	return &Config{
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			Name:    "canteen",
			User:    "canteen",
			SSLMode: "disable",
		},
		Redis:         RedisConfig{Host: "localhost", Port: "6379"},
		Kafka:         KafkaConfig{Broker: "localhost:9092"},
		StoreTimeout:  "15s",
		ReportTZ:      "Local",
		PublicBaseURL: "http://localhost:8080",
		UploadDir:     "./uploads",
	}
}

// Load builds the configuration from defaults, then CONFIG_FILE (YAML), then
// a .env file if present, then the process environment.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg.Postgres.Host = GetEnv("DB_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = GetEnv("DB_PORT", cfg.Postgres.Port)
	cfg.Postgres.Name = GetEnv("DB_NAME", cfg.Postgres.Name)
	cfg.Postgres.User = GetEnv("DB_USER", cfg.Postgres.User)
	cfg.Postgres.Password = GetEnv("DB_PASSWORD", cfg.Postgres.Password)
	cfg.Postgres.SSLMode = GetEnv("DB_SSLMODE", cfg.Postgres.SSLMode)
	cfg.Redis.Host = GetEnv("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = GetEnv("REDIS_PORT", cfg.Redis.Port)
	cfg.Kafka.Broker = GetEnv("KAFKA_BROKER", cfg.Kafka.Broker)
	cfg.JWTSecret = GetEnv("AUTH_JWT_SECRET", cfg.JWTSecret)
	cfg.StoreTimeout = GetEnv("STORE_TIMEOUT", cfg.StoreTimeout)
	cfg.ReportTZ = GetEnv("REPORT_TIMEZONE", cfg.ReportTZ)
	cfg.PublicBaseURL = GetEnv("PUBLIC_BASE_URL", cfg.PublicBaseURL)
	cfg.UploadDir = GetEnv("UPLOAD_DIR", cfg.UploadDir)

	if _, err := time.ParseDuration(cfg.StoreTimeout); err != nil {
		return nil, fmt.Errorf("invalid store timeout %q: %w", cfg.StoreTimeout, err)
	}
	if _, err := time.LoadLocation(cfg.ReportTZ); err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", cfg.ReportTZ, err)
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	return cfg
}

// Timeout is the bound applied to every backing-store call.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.StoreTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTZ)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.Postgres.Host + " port=" + c.Postgres.Port + " user=" + c.Postgres.User +
		" password=" + c.Postgres.Password + " dbname=" + c.Postgres.Name + " sslmode=" + c.Postgres.SSLMode
}

func MustInitPostgres(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Host + ":" + cfg.Redis.Port,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg *Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Broker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg *Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: cfg.Timeout(),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
