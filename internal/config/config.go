package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/settings"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Cookie struct {
		Name   string
		Secure bool
	}
	Log struct {
		Level  string
		Format string
	}
	SessionLifetime time.Duration
	NoticeDelay     time.Duration
	Catalog         settings.Catalog
}

// Load reads config from environment (SURFX_ prefix) and optional surfx.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SURFX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("surfx")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "surfx.db")
	v.SetDefault("session.lifetime", "720h")
	v.SetDefault("cookie.name", prefs.DefaultCookieName)
	v.SetDefault("cookie.secure", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("notice.delay", "3s")

	v.SetDefault("style.theme", "simple")
	v.SetDefault("style.colorscheme", "catppuccin-mocha")
	v.SetDefault("style.animation", "simple-frosted-glow")
	v.SetDefault("style.themes", []string{"simple"})
	v.SetDefault("style.colorschemes", []string{
		"catppuccin-mocha", "dark-chocolate", "dracula", "gruvbox-dark",
		"monokai", "nord", "oceanic-next", "one-dark", "solarized-dark",
		"solarized-light", "tokyo-night", "tomorrow-night",
	})
	v.SetDefault("style.animations", []string{"simple-frosted-glow"})
	v.SetDefault("engines", []string{
		"Bing", "Brave", "DuckDuckGo", "LibreX", "Mojeek", "Qwant", "Searx", "Startpage",
	})
	v.SetDefault("safe_search", prefs.SafeSearchLow)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Cookie.Name = v.GetString("cookie.name")
	cfg.Cookie.Secure = v.GetBool("cookie.secure")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid SURFX_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	delay, err := time.ParseDuration(v.GetString("notice.delay"))
	if err != nil {
		return nil, fmt.Errorf("invalid SURFX_NOTICE_DELAY: %w", err)
	}
	cfg.NoticeDelay = delay

	safe := v.GetInt("safe_search")
	if !prefs.ValidSafeSearchLevel(safe) {
		log.Error().Int("safe_search", safe).Msg("config error: safe_search must be 0, 1 or 2; falling back to 1")
		safe = prefs.SafeSearchLow
	}

	cfg.Catalog = settings.Catalog{
		Themes:             v.GetStringSlice("style.themes"),
		ColorSchemes:       v.GetStringSlice("style.colorschemes"),
		Animations:         v.GetStringSlice("style.animations"),
		Engines:            v.GetStringSlice("engines"),
		DefaultTheme:       v.GetString("style.theme"),
		DefaultColorScheme: v.GetString("style.colorscheme"),
		DefaultAnimation:   v.GetString("style.animation"),
		DefaultSafeSearch:  safe,
	}
	if v.IsSet("engines_enabled") {
		cfg.Catalog.DefaultEngines = v.GetStringSlice("engines_enabled")
	}

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("SURFX_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("SURFX_DB_DSN is required")
	}
	if len(cfg.Catalog.Themes) == 0 {
		return nil, fmt.Errorf("style.themes must list at least one theme")
	}
	if len(cfg.Catalog.Engines) == 0 {
		return nil, fmt.Errorf("engines must list at least one search engine")
	}
	return cfg, nil
}
