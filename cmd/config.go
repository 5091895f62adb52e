package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns a libpq connection string.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	PublicDomain    string `mapstructure:"publicDomain"`
	Endpoint        string `mapstructure:"endpoint"`
	Prefix          string `mapstructure:"prefix"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secretKey"`
}

type KafkaConfig struct {
	// Brokers is empty when events are not published.
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	TrackingTTL time.Duration `mapstructure:"trackingTTL"`
}

type TimeoutsConfig struct {
	Upload  time.Duration `mapstructure:"upload"`
	Payment time.Duration `mapstructure:"payment"`
}

type BulkConfig struct {
	Workers int `mapstructure:"workers"`
}

type OrphanSweepConfig struct {
	Schedule string        `mapstructure:"schedule"`
	Grace    time.Duration `mapstructure:"grace"`
}

type Config struct {
	HTTP        HTTPConfig        `mapstructure:"http"`
	DB          DBConfig          `mapstructure:"db"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	S3          S3Config          `mapstructure:"s3"`
	Stripe      StripeConfig      `mapstructure:"stripe"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Timeouts    TimeoutsConfig    `mapstructure:"timeouts"`
	Bulk        BulkConfig        `mapstructure:"bulk"`
	OrphanSweep OrphanSweepConfig `mapstructure:"orphanSweep"`
}

var envBindings = map[string]string{
	"http.port":            "HTTP_PORT",
	"db.host":              "DB_HOST",
	"db.port":              "DB_PORT",
	"db.user":              "DB_USER",
	"db.password":          "DB_PASSWORD",
	"db.name":              "DB_NAME",
	"db.sslmode":           "DB_SSLMODE",
	"jwt.secret":           "JWT_SECRET",
	"s3.bucket":            "S3_BUCKET",
	"s3.region":            "S3_REGION",
	"s3.accessKeyID":       "S3_ACCESS_KEY_ID",
	"s3.secretAccessKey":   "S3_SECRET_ACCESS_KEY",
	"s3.publicDomain":      "S3_PUBLIC_DOMAIN",
	"s3.endpoint":          "S3_ENDPOINT",
	"s3.prefix":            "S3_PREFIX",
	"stripe.secretKey":     "STRIPE_SECRET_KEY",
	"kafka.brokers":        "KAFKA_BROKERS",
	"kafka.topic":          "KAFKA_TOPIC",
	"redis.addr":           "REDIS_ADDR",
	"redis.username":       "REDIS_USERNAME",
	"redis.password":       "REDIS_PASSWORD",
	"redis.db":             "REDIS_DB",
	"redis.trackingTTL":    "REDIS_TRACKING_TTL",
	"timeouts.upload":      "UPLOAD_TIMEOUT",
	"timeouts.payment":     "PAYMENT_TIMEOUT",
	"bulk.workers":         "BULK_WORKERS",
	"orphanSweep.schedule": "ORPHAN_SWEEP_SCHEDULE",
	"orphanSweep.grace":    "ORPHAN_SWEEP_GRACE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.prefix", "documents/")
	v.SetDefault("kafka.topic", "shipment.events")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.trackingTTL", "10m")
	v.SetDefault("timeouts.upload", "30s")
	v.SetDefault("timeouts.payment", "30s")
	v.SetDefault("bulk.workers", 8)
	v.SetDefault("orphanSweep.schedule", "0 */15 * * * *")
	v.SetDefault("orphanSweep.grace", "1h")
}

// LoadConfig reads envFile into the environment (a missing file is fine),
// then resolves every key from flags, environment and defaults, in that order.
// flags may be nil; a "port" flag overrides http.port.
func LoadConfig(envFile string, flags *pflag.FlagSet) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}

	if flags != nil {
		if port := flags.Lookup("port"); port != nil {
			if err := v.BindPFlag("http.port", port); err != nil {
				return Config{}, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var missing []error
	if c.JWT.Secret == "" {
		missing = append(missing, errors.New("JWT_SECRET is required"))
	}
	if c.DB.User == "" || c.DB.Name == "" {
		missing = append(missing, errors.New("DB_USER and DB_NAME are required"))
	}
	if c.S3.Bucket == "" {
		missing = append(missing, errors.New("S3_BUCKET is required"))
	}
	return errors.Join(missing...)
}
