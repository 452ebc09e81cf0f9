package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/jobs"
	"tracking/internal/pkg/errs"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is read from an optional .env file and the process environment.
// Keys map to variables by upper-casing and replacing dots, e.g. db.max_open_conns is DB_MAX_OPEN_CONNS.
type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	DB        DBConfig        `mapstructure:"db"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Lifecycle LifecycleConfig `mapstructure:"lifecycle"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SslMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RetryConfig struct {
	MaxAttempts      int           `mapstructure:"max_attempts"`
	InitialDelay     time.Duration `mapstructure:"initial_delay"`
	MaxDelay         time.Duration `mapstructure:"max_delay"`
	BackoffFactor    float64       `mapstructure:"backoff_factor"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

type LifecycleConfig struct {
	AllowDeliveryFromBooked bool `mapstructure:"allow_delivery_from_booked"`
}

type MetricsConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	StageRefreshSpec string `mapstructure:"stage_refresh_spec"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads envFile into the environment when it exists and then resolves every key.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	def := commands.DefaultRetryPolicy()

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "15s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "tracking")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")

	v.SetDefault("retry.max_attempts", def.MaxAttempts)
	v.SetDefault("retry.initial_delay", def.InitialDelay.String())
	v.SetDefault("retry.max_delay", def.MaxDelay.String())
	v.SetDefault("retry.backoff_factor", def.BackoffFactor)
	v.SetDefault("retry.operation_timeout", def.OperationTimeout.String())

	v.SetDefault("lifecycle.allow_delivery_from_booked", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.stage_refresh_spec", jobs.DefaultStageGaugeSpec)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.HTTP.Port) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if strings.TrimSpace(c.DB.Host) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if strings.TrimSpace(c.DB.Name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if c.Retry.MaxAttempts < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("RETRY_MAX_ATTEMPTS", c.Retry.MaxAttempts, 1, "unbounded"))
	}
	if _, parseErr := log.ParseLevel(c.Log.Level); parseErr != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", parseErr))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"LOG_FORMAT", fmt.Errorf("%q is not one of text, json", c.Log.Format)))
	}
	return err
}

// DSN is the libpq keyword/value connection string understood by the gorm postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

func (c RetryConfig) Policy() commands.RetryPolicy {
	return commands.RetryPolicy{
		MaxAttempts:      c.MaxAttempts,
		InitialDelay:     c.InitialDelay,
		MaxDelay:         c.MaxDelay,
		BackoffFactor:    c.BackoffFactor,
		OperationTimeout: c.OperationTimeout,
	}
}

func (c LifecycleConfig) Policy() parcel.TransitionPolicy {
	return parcel.TransitionPolicy{AllowDeliveryFromBooked: c.AllowDeliveryFromBooked}
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c LogConfig) NewLogger() *log.Logger {
	logger := log.New()
	if c.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
