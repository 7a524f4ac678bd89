package infra

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix env prefix for viper
const EnvPrefix = "CAMPUS"

// EnvDevelopment development runtime environment
const EnvDevelopment = "development"

// EnvProduction production runtime environment
const EnvProduction = "production"

// AppConfig App option object
type AppConfig struct {
	AppID          string        `mapstructure:"app_id" json:"app_id" yaml:"app_id" validate:"required"`            // Application ID
	Host           string        `mapstructure:"host" json:"host" yaml:"host"`                                      // bind host address
	Port           int           `mapstructure:"port" json:"port" yaml:"port"`                                      // bind listen port
	Env            string        `mapstructure:"env" json:"env" yaml:"env" validate:"oneof=development production"` // runtime environment
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout" yaml:"request_timeout"`     // inbound request deadline
	SessionTimeout time.Duration `mapstructure:"session_timeout" json:"session_timeout" yaml:"session_timeout"`     // JWT lifetime
	SessionRefresh time.Duration `mapstructure:"session_refresh" json:"session_refresh" yaml:"session_refresh"`     // session refresh threshold
	Upstream       struct {
		BaseURL    string        `mapstructure:"base_url" json:"base_url" yaml:"base_url" validate:"required,url"` // course API base URL
		APIKey     string        `mapstructure:"api_key" json:"-" yaml:"api_key"`                                  // course API key
		Timeout    time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`                            // per-call deadline
		RetryCount int           `mapstructure:"retry_count" json:"retry_count" yaml:"retry_count" validate:"min=0,max=5"`
	} `mapstructure:"upstream" json:"upstream" yaml:"upstream"`
	Catalog struct {
		PlaceholderCount int `mapstructure:"placeholder_count" json:"placeholder_count" yaml:"placeholder_count"` // grid size to pad with placeholders
	} `mapstructure:"catalog" json:"catalog" yaml:"catalog"`
	Checkout struct {
		TTL time.Duration `mapstructure:"ttl" json:"ttl" yaml:"ttl"` // cached checkout context lifetime
	} `mapstructure:"checkout" json:"checkout" yaml:"checkout"`
	Logging struct {
		FilePath string `mapstructure:"file_path" json:"file_path" yaml:"file_path"`                            // log file path
		Level    string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"` // global logging level
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
	Security struct {
		JWTMethod string `mapstructure:"jwt_method" json:"jwt_method" yaml:"jwt_method" validate:"oneof=HS256 HS512 ES256"`
		JWTSecret string `mapstructure:"jwt_secret" json:"-" yaml:"jwt_secret" validate:"required"`
		TokenName string `mapstructure:"token_name" json:"token_name" yaml:"token_name" validate:"required"` // jwt token name set in cookie
		IDLength  int    `mapstructure:"id_length" json:"id_length" yaml:"id_length"`                        // length of generated transaction IDs
	} `mapstructure:"security" json:"security" yaml:"security"`
	KVStore struct {
		Host     string `mapstructure:"host" json:"host" yaml:"host"`      // kv host address
		Port     int    `mapstructure:"port" json:"port" yaml:"port"`      // kv listen port
		Password string `mapstructure:"password" json:"-" yaml:"password"` // kv password
	} `mapstructure:"kv" json:"kv" yaml:"kv"`
	DevOP struct {
		APM bool `mapstructure:"apm" json:"apm" yaml:"apm"`
	} `mapstructure:"devop" json:"devop" yaml:"devop"`
}

// InitConfig init app config using viper
func InitConfig() (*AppConfig, error) {
	// app
	pflag.String("host", "", "binding address")
	pflag.String("app_id", "", "application identifier (required)")
	pflag.String("env", "development", "runtime environment, can be 'development' or 'production'")
	pflag.Int("port", 8081, "listening port")
	pflag.Duration("request_timeout", 30*time.Second, "inbound request deadline")
	pflag.Duration("session_timeout", 30*time.Minute, "JWT lifetime(m, s and h units are supported), eg.30m")
	pflag.Duration("session_refresh", 5*time.Minute, "session refresh threshold(m, s and h units are supported), eg.5m")

	// upstream course API
	pflag.String("upstream.base_url", "", "course API base URL (required)")
	pflag.String("upstream.api_key", "", "course API key")
	pflag.Duration("upstream.timeout", 10*time.Second, "per-call deadline for upstream requests")
	pflag.Int("upstream.retry_count", 2, "transport-level retries for upstream requests")

	// catalog
	pflag.Int("catalog.placeholder_count", 0, "pad the course grid with placeholders up to this count")

	// checkout
	pflag.Duration("checkout.ttl", 24*time.Hour, "cached checkout context lifetime")

	// logging
	pflag.String("logging.level", "info", "logging level")
	pflag.String("logging.file_path", "", "log to file")

	// security
	pflag.String("security.jwt_method", "HS256", "hash algorithm used for JWT auth")
	pflag.String("security.jwt_secret", "", "JWT secret (required)")
	pflag.String("security.token_name", "", "cookie name to store the token (required)")
	pflag.Int("security.id_length", 24, "length of generated client transaction IDs")

	// kv storage
	pflag.String("kv.host", "127.0.0.1", "kv host")
	pflag.Int("kv.port", 6379, "kv server port")
	pflag.String("kv.password", "", "kv server password")

	// DevOp
	pflag.Bool("devop.apm", false, "enable apm metrics")

	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config = new(AppConfig)
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if config.Logging.Level == "debug" {
		if configJSON, err := json.MarshalIndent(config, "", "  "); err == nil {
			log.Printf("App config: %s\n", string(configJSON))
		}
	}
	return config, nil
}

func validateConfig(config *AppConfig) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "-" || name == "" {
			name = fld.Tag.Get("yaml")
			if name == "-" || name == "" {
				return ""
			}
		}
		return name
	})
	err := validate.Struct(config)
	if _, ok := err.(*validator.InvalidValidationError); ok {
		return err
	}
	if err == nil {
		return nil
	}

	var msg []string
	for _, field := range err.(validator.ValidationErrors) {
		namespace := field.Namespace()
		fieldName := namespace[strings.IndexByte(namespace, '.')+1:] // trim top level namespace
		switch field.Tag() {
		case "required":
			msg = append(msg, fmt.Sprintf("%s is required", fieldName))
		case "oneof":
			msg = append(msg, fmt.Sprintf("%s must be one of (%s)", fieldName, field.Param()))
		case "url":
			msg = append(msg, fmt.Sprintf("%s must be a valid URL", fieldName))
		default:
			msg = append(msg, fmt.Sprintf("%s failed on %s", fieldName, field.Tag()))
		}
	}
	if len(msg) > 0 {
		return fmt.Errorf("failed to validate config: \n%s", strings.Join(msg, "\n"))
	}
	return nil
}
