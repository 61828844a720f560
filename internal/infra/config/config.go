// internal/infra/config/config.go
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	instructiondom "narratives-solana/internal/domain/instruction"
	"narratives-solana/internal/infra/solana"
)

const (
	Production  = "production"
	Development = "development"

	EnvPrefix     = "SOLANA_SERVICE"
	EnvConfigFile = "SOLANA_SERVICE_CONFIG_FILE"

	defaultHost             = "0.0.0.0"
	defaultPort             = 3000
	defaultTokenProgramID   = solana.TokenProgramID
	defaultRentSysvarID     = solana.RentSysvarID
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 10 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 25 * time.Second
	defaultRateLimitBurst   = 20
	defaultRateLimitIdleTTL = 10 * time.Minute
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config はサービス全体の設定を保持します。
type Config struct {
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`

	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	Solana    SolanaConfig    `mapstructure:"solana"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// SolanaConfig holds the well-known addresses the instruction builder targets.
type SolanaConfig struct {
	TokenProgramID string `mapstructure:"token_program_id"`
	RentSysvarID   string `mapstructure:"rent_sysvar_id"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig is per client IP. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS     float64       `mapstructure:"rps"`
	Burst   int           `mapstructure:"burst"`
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

// Load reads configuration from defaults, an optional YAML file and
// SOLANA_SERVICE_* environment variables (highest precedence).
//
// configPath が空なら SOLANA_SERVICE_CONFIG_FILE、次に ./config.yaml,
// /etc/solana-service/config.yaml を探します。ファイルが無くてもエラーにしません。
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/solana-service/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("viper read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", Development)
	v.SetDefault("debug", false)
	v.SetDefault("host", defaultHost)
	v.SetDefault("port", defaultPort)
	v.SetDefault("read_timeout", defaultReadTimeout)
	v.SetDefault("write_timeout", defaultWriteTimeout)
	v.SetDefault("idle_timeout", defaultIdleTimeout)
	v.SetDefault("shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("solana.token_program_id", defaultTokenProgramID)
	v.SetDefault("solana.rent_sysvar_id", defaultRentSysvarID)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", defaultRateLimitBurst)
	v.SetDefault("rate_limit.idle_ttl", defaultRateLimitIdleTTL)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	// AllSettings does not see env-only keys unless they have a default,
	// and every key above has one.
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(c *Config) {
	if c.Environment == "" {
		c.Environment = Development
	}
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = defaultIdleTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if strings.TrimSpace(c.Solana.TokenProgramID) == "" {
		c.Solana.TokenProgramID = defaultTokenProgramID
	}
	if strings.TrimSpace(c.Solana.RentSysvarID) == "" {
		c.Solana.RentSysvarID = defaultRentSysvarID
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = defaultRateLimitBurst
	}
	if c.RateLimit.IdleTTL <= 0 {
		c.RateLimit.IdleTTL = defaultRateLimitIdleTTL
	}
}

// Validate checks values that would otherwise only fail at request time.
func (c *Config) Validate() error {
	if !slices.Contains([]string{Production, Development}, c.Environment) {
		return fmt.Errorf("%w: environment must be %q or %q, got %q", ErrInvalidConfig, Production, Development, c.Environment)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port out of range: %d", ErrInvalidConfig, c.Port)
	}
	if _, err := instructiondom.ParsePublicKey(c.Solana.TokenProgramID); err != nil {
		return fmt.Errorf("%w: solana.token_program_id: %v", ErrInvalidConfig, err)
	}
	if _, err := instructiondom.ParsePublicKey(c.Solana.RentSysvarID); err != nil {
		return fmt.Errorf("%w: solana.rent_sysvar_id: %v", ErrInvalidConfig, err)
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("%w: rate_limit.rps must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address, e.g. "0.0.0.0:3000".
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TokenProgram returns the parsed token program id. Validate has run by the
// time a Config leaves Load.
func (c *Config) TokenProgram() instructiondom.PublicKey {
	return instructiondom.MustParsePublicKey(c.Solana.TokenProgramID)
}

func (c *Config) RentSysvar() instructiondom.PublicKey {
	return instructiondom.MustParsePublicKey(c.Solana.RentSysvarID)
}

func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
