package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Port           int     `mapstructure:"port"`
	HTTPAddr       string  `mapstructure:"http_addr"`
	CatalogPath    string  `mapstructure:"catalog_path"`
	RegisterPath   string  `mapstructure:"register_path"`
	OutputDir      string  `mapstructure:"output_dir"`
	FontDir        string  `mapstructure:"font_dir"`
	MatchThreshold float64 `mapstructure:"match_threshold"`
	MaxUploadBytes int64   `mapstructure:"max_upload_bytes"`
	DefaultClient  string  `mapstructure:"default_client"`
}

const (
	DefaultPort        = 8000
	DefaultCatalogPath = "1 LISTA DE PRECIOS VIGENTE 2025_chat.xlsx"
	envPrefix          = "AUTOCOTIZAR"
)

// Flag names that Load binds when they exist on the given flag set.
var flagKeys = map[string]string{
	"port":     "port",
	"precios":  "catalog_path",
	"registro": "register_path",
	"fuentes":  "font_dir",
	"umbral":   "match_threshold",
	"config":   "config",
}

// Load merges defaults, an optional config file, .env, AUTOCOTIZAR_* environment
// variables and command-line flags, in increasing order of precedence.
func Load(flags *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("http_addr", "")
	v.SetDefault("catalog_path", DefaultCatalogPath)
	v.SetDefault("register_path", "cotizaciones_registro.csv")
	v.SetDefault("output_dir", ".")
	v.SetDefault("font_dir", "")
	v.SetDefault("match_threshold", 0.6)
	v.SetDefault("max_upload_bytes", 10<<20)
	v.SetDefault("default_client", "Cliente mostrador")
	v.SetDefault("config", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = fmt.Sprintf(":%d", c.Port)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		errs = append(errs, fmt.Errorf("match threshold %v must be in (0, 1]", c.MatchThreshold))
	}
	if strings.TrimSpace(c.CatalogPath) == "" {
		errs = append(errs, errors.New("price list path is empty"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max upload bytes %d must be positive", c.MaxUploadBytes))
	}
	if strings.TrimSpace(c.DefaultClient) == "" {
		errs = append(errs, errors.New("default client is empty"))
	}
	return errors.Join(errs...)
}

// CatalogExists reports whether the configured price list is present.
func (c Config) CatalogExists() bool {
	st, err := os.Stat(c.CatalogPath)
	return err == nil && !st.IsDir()
}
