package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string           `yaml:"env" env-default:"local"`
	StoragePath string           `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	HTTPServer  HTTPServerConfig `yaml:"http_server"`
	Migrations  MigrationsConfig `yaml:"migrations"`
	Validator   ValidatorConfig  `yaml:"validator"`
	Relay       RelayConfig      `yaml:"relay"`
	Auth        AuthConfig       `yaml:"auth"`
}

type HTTPServerConfig struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type MigrationsConfig struct {
	MigrationsPath string `yaml:"migrations_path" env-default:"./migrations"`
	MigrationTable string `yaml:"migration_table" env-default:"migrations"`
}

// ValidatorConfig drives the outgoing probes. An empty ProxyURL selects the
// direct probe.
type ValidatorConfig struct {
	Timeout   time.Duration `yaml:"timeout" env:"VALIDATOR_TIMEOUT" env-default:"10s"`
	UserAgent string        `yaml:"user_agent" env-default:"Link-Validator/1.0"`
	ProxyURL  string        `yaml:"proxy_url" env:"VALIDATOR_PROXY_URL"`
}

// RelayConfig protects the relay endpoint and the hosts it probes. The
// breaker is on unless BreakerDisabled is set.
type RelayConfig struct {
	RateLimit       float64       `yaml:"rate_limit" env-default:"5"`
	RateBurst       int           `yaml:"rate_burst" env-default:"10"`
	BreakerDisabled bool          `yaml:"breaker_disabled"`
	BreakerFailures uint32        `yaml:"breaker_failures" env-default:"5"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout" env-default:"30s"`
}

// AuthConfig holds the PEM encoded RSA key used to verify bearer tokens.
// Without it every caller is treated as a guest.
type AuthConfig struct {
	PublicKey string `yaml:"public_key" env:"AUTH_PUBLIC_KEY"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config file path is empty")
	}

	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath reads the -config flag, falling back to CONFIG_PATH.
// Callers that declare their own flags must do so before MustLoad.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
