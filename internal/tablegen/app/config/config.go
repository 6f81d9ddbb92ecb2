package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Endpoint    string            `mapstructure:"endpoint"`
	LogLevel    string            `mapstructure:"log_level"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Output      OutputConfig      `mapstructure:"output"`
	Request     RequestConfig     `mapstructure:"request"`
}

type CredentialsConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type RequestConfig struct {
	// Delay is the mandatory wait between two consecutive requests.
	Delay         time.Duration    `mapstructure:"delay"`
	Timeout       time.Duration    `mapstructure:"timeout"`
	RetryWait     time.Duration    `mapstructure:"retry_wait"`
	DeclaredValue string           `mapstructure:"declared_value"`
	Dimensions    DimensionsConfig `mapstructure:"dimensions"`
}

type DimensionsConfig struct {
	HeightCm int `mapstructure:"height_cm"`
	WidthCm  int `mapstructure:"width_cm"`
	DepthCm  int `mapstructure:"depth_cm"`
}

// Load reads the config file when present and applies environment
// overrides for the credentials. Missing file is not an error: defaults
// plus environment may be enough.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("endpoint", "https://edi.totalexpress.com.br/webservice_calculo_frete.php")
	v.SetDefault("log_level", "info")
	v.SetDefault("credentials.username", "")
	v.SetDefault("credentials.password", "")
	v.SetDefault("output.dir", "output")
	v.SetDefault("request.delay", "1s")
	v.SetDefault("request.timeout", "30s")
	v.SetDefault("request.retry_wait", "500ms")
	v.SetDefault("request.declared_value", "0.00")
	v.SetDefault("request.dimensions.height_cm", 10)
	v.SetDefault("request.dimensions.width_cm", 15)
	v.SetDefault("request.dimensions.depth_cm", 20)

	_ = v.BindEnv("credentials.username", "TOTAL_EXPRESS_USERNAME")
	_ = v.BindEnv("credentials.password", "TOTAL_EXPRESS_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}

	if c.Credentials.Username == "" || c.Credentials.Password == "" {
		return fmt.Errorf("credentials are required: set TOTAL_EXPRESS_USERNAME and TOTAL_EXPRESS_PASSWORD")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}

	if c.Request.Delay <= 0 {
		return fmt.Errorf("request.delay must be positive")
	}

	if c.Request.Timeout <= 0 {
		return fmt.Errorf("request.timeout must be positive")
	}

	if c.Request.RetryWait <= 0 {
		return fmt.Errorf("request.retry_wait must be positive")
	}

	if _, err := decimal.NewFromString(c.Request.DeclaredValue); err != nil {
		return fmt.Errorf("request.declared_value %q is not a decimal", c.Request.DeclaredValue)
	}

	if c.Request.Dimensions.HeightCm <= 0 || c.Request.Dimensions.WidthCm <= 0 || c.Request.Dimensions.DepthCm <= 0 {
		return fmt.Errorf("request.dimensions must be positive")
	}

	return nil
}
