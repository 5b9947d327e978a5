package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Harvest  HarvestConfig
	Archive  ArchiveConfig
	Email    EmailConfig
	Schedule ScheduleConfig
	Log      LogConfig
}

// ServerConfig holds the admin HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// HarvestConfig holds bulletin discovery and download settings. The listing
// URLs are year-suffixed publication pages; Year overrides the current year
// for backfills.
type HarvestConfig struct {
	StandardListingURL       string        `mapstructure:"standard_listing_url"`
	ParallelImportListingURL string        `mapstructure:"parallel_import_listing_url"`
	Year                     string        `mapstructure:"year"`
	HTTPTimeout              time.Duration `mapstructure:"http_timeout"`
}

// ListingYear returns the configured year, defaulting to the current one.
func (h *HarvestConfig) ListingYear() string {
	if h.Year != "" {
		return h.Year
	}
	return fmt.Sprintf("%d", time.Now().Year())
}

// ArchiveConfig holds S3 bulletin archive settings. Provider "noop" disables
// archiving.
type ArchiveConfig struct {
	Provider  string `mapstructure:"provider"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// EmailConfig holds notification delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// ScheduleConfig holds the periodic harvest schedule.
type ScheduleConfig struct {
	CronSpec string `mapstructure:"cron_spec"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the LICWATCH_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LICWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "licencewatch")
	v.SetDefault("db.password", "licencewatch_secret")
	v.SetDefault("db.name", "licencewatch_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Harvest defaults
	v.SetDefault("harvest.standard_listing_url",
		"https://www.gov.uk/government/publications/marketing-authorisations-granted-in-")
	v.SetDefault("harvest.parallel_import_listing_url",
		"https://www.gov.uk/government/publications/parallel-import-licences-granted-in-")
	v.SetDefault("harvest.year", "")
	v.SetDefault("harvest.http_timeout", "30s")

	// Archive defaults
	v.SetDefault("archive.provider", "noop")
	v.SetDefault("archive.region", "eu-west-2")
	v.SetDefault("archive.bucket", "licencewatch-bulletins")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.prefix", "bulletins")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-2")
	v.SetDefault("email.from_address", "noreply@licencewatch.local")
	v.SetDefault("email.from_name", "LicenceWatch")
	v.SetDefault("email.to_address", "")

	// Schedule defaults: weekday mornings after the regulator publishes
	v.SetDefault("schedule.cron_spec", "0 7 * * 1-5")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                         "LICWATCH_SERVER_PORT",
		"server.read_timeout":                 "LICWATCH_SERVER_READ_TIMEOUT",
		"server.write_timeout":                "LICWATCH_SERVER_WRITE_TIMEOUT",
		"server.environment":                  "LICWATCH_SERVER_ENVIRONMENT",
		"db.host":                             "LICWATCH_DB_HOST",
		"db.port":                             "LICWATCH_DB_PORT",
		"db.user":                             "LICWATCH_DB_USER",
		"db.password":                         "LICWATCH_DB_PASSWORD",
		"db.name":                             "LICWATCH_DB_NAME",
		"db.sslmode":                          "LICWATCH_DB_SSLMODE",
		"db.max_open":                         "LICWATCH_DB_MAX_OPEN",
		"db.max_idle":                         "LICWATCH_DB_MAX_IDLE",
		"harvest.standard_listing_url":        "LICWATCH_HARVEST_STANDARD_LISTING_URL",
		"harvest.parallel_import_listing_url": "LICWATCH_HARVEST_PARALLEL_IMPORT_LISTING_URL",
		"harvest.year":                        "LICWATCH_HARVEST_YEAR",
		"harvest.http_timeout":                "LICWATCH_HARVEST_HTTP_TIMEOUT",
		"archive.provider":                    "LICWATCH_ARCHIVE_PROVIDER",
		"archive.region":                      "LICWATCH_ARCHIVE_REGION",
		"archive.bucket":                      "LICWATCH_ARCHIVE_BUCKET",
		"archive.endpoint":                    "LICWATCH_ARCHIVE_ENDPOINT",
		"archive.access_key":                  "LICWATCH_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":                  "LICWATCH_ARCHIVE_SECRET_KEY",
		"archive.prefix":                      "LICWATCH_ARCHIVE_PREFIX",
		"email.provider":                      "LICWATCH_EMAIL_PROVIDER",
		"email.region":                        "LICWATCH_EMAIL_REGION",
		"email.from_address":                  "LICWATCH_EMAIL_FROM_ADDRESS",
		"email.from_name":                     "LICWATCH_EMAIL_FROM_NAME",
		"email.to_address":                    "LICWATCH_EMAIL_TO_ADDRESS",
		"schedule.cron_spec":                  "LICWATCH_SCHEDULE_CRON_SPEC",
		"log.level":                           "LICWATCH_LOG_LEVEL",
		"log.format":                          "LICWATCH_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Harvest = HarvestConfig{
		StandardListingURL:       v.GetString("harvest.standard_listing_url"),
		ParallelImportListingURL: v.GetString("harvest.parallel_import_listing_url"),
		Year:                     v.GetString("harvest.year"),
		HTTPTimeout:              v.GetDuration("harvest.http_timeout"),
	}
	cfg.Archive = ArchiveConfig{
		Provider:  v.GetString("archive.provider"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
		Prefix:    v.GetString("archive.prefix"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ToAddress:   v.GetString("email.to_address"),
	}
	cfg.Schedule = ScheduleConfig{
		CronSpec: v.GetString("schedule.cron_spec"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
