package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is the struct that holds the configuration for the application.
type Config struct {
	APIPort      uint     `env:"API_PORT"      envDefault:"8765"                                        print:"true"`
	FrontendURLs []string `env:"FRONTEND_URLS" envDefault:"http://localhost:1420,https://tauri.localhost" envSeparator:"," print:"true"`

	RateLimit   uint          `env:"RATE_LIMIT"   envDefault:"20" print:"true"`
	ExecTimeout time.Duration `env:"EXEC_TIMEOUT" envDefault:"0s" print:"true"`

	RedisHost     string `env:"REDIS_HOST"     envDefault:""     print:"true"`
	RedisPort     uint   `env:"REDIS_PORT"     envDefault:"6379" print:"true"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""     print:"false"`
	RedisDB       uint   `env:"REDIS_DB"       envDefault:"0"    print:"true"`

	UpdateRepository string `env:"UPDATE_REPOSITORY" envDefault:"devusSs/hostbridge" print:"true"`
	GitHubToken      string `env:"GITHUB_TOKEN"      envDefault:""                   print:"false"`
}

// String returns the string representation of the config struct.
func (c *Config) String() string {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	m := make(map[string]interface{})
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		tag := t.Field(i).Tag.Get("print")

		// We use the env tag since env is the default
		if tag == "true" {
			m[t.Field(i).Tag.Get("env")] = field.Interface()
		}
	}

	content, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprintf("error marshalling config: %v", err)
	}

	return string(content)
}

// Load determines the file type of provided config and loads config accordingly.
//
// An empty path reads the process environment only.
func Load(path string) (*Config, error) {
	if path == "" {
		return loadEnv()
	}
	switch filepath.Ext(path) {
	case ".env":
		return loadEnv(path)
	default:
		return nil, fmt.Errorf("unknown config file type: %s", filepath.Ext(path))
	}
}

func loadEnv(envFile ...string) (*Config, error) {
	fileProvided := len(envFile) > 0
	if fileProvided {
		if err := godotenv.Load(envFile[0]); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, envOptions); err != nil {
		return nil, fmt.Errorf("parsing env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.APIPort == 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid api port: %d", c.APIPort)
	}
	if len(c.FrontendURLs) == 0 {
		return fmt.Errorf("at least one frontend url is required")
	}
	if c.RateLimit == 0 {
		return fmt.Errorf("rate limit must be greater than zero")
	}
	if c.ExecTimeout < 0 {
		return fmt.Errorf("exec timeout must not be negative: %v", c.ExecTimeout)
	}
	return nil
}

var (
	envOptions = env.Options{
		Prefix:          "HOSTBRIDGE_",
		RequiredIfNoDef: true,
	}
)
