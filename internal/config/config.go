package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads a .env file from the working directory, if present, before
	// viper reads the environment.
	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr            string        `validate:"required"`
		ShutdownTimeout time.Duration `validate:"gt=0"`
	}
	DB struct {
		Driver string `validate:"required,oneof=sqlite3 mysql postgres"`
		DSN    string `validate:"required"`
	}
	API struct {
		// Token is the static secret every request must present as
		// "Authorization: Bearer <token>".
		Token string `validate:"required"`
	}
	Log struct {
		Level  string `validate:"oneof=debug info warn error"`
		Pretty bool
	}
}

// Load reads config from environment (BOOKMARKS_ prefix), an optional .env
// file and an optional bookmarks.yaml in the working directory.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read bookmarks.yaml")
		}
	}

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.API.Token = v.GetString("api.token")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")

	timeout, err := time.ParseDuration(v.GetString("http.shutdown_timeout"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid BOOKMARKS_HTTP_SHUTDOWN_TIMEOUT")
	}
	cfg.HTTP.ShutdownTimeout = timeout

	if err := validator.New().Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

var envNames = map[string]string{
	"Addr":            "BOOKMARKS_HTTP_ADDR",
	"ShutdownTimeout": "BOOKMARKS_HTTP_SHUTDOWN_TIMEOUT",
	"Driver":          "BOOKMARKS_DB_DRIVER",
	"DSN":             "BOOKMARKS_DB_DSN",
	"Token":           "BOOKMARKS_API_TOKEN",
	"Level":           "BOOKMARKS_LOG_LEVEL",
}

// describe turns the first validation failure into an error naming the
// environment variable to fix.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "config validation failed")
	}
	fe := verrs[0]
	name := envNames[fe.Field()]
	switch fe.Tag() {
	case "required":
		return errors.Errorf("%s is required", name)
	case "oneof":
		return errors.Errorf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return errors.Errorf("%s is invalid", name)
	}
}
