package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/dossier/internal/content"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Loader modes.
const (
	LoaderModeFS   = "fs"
	LoaderModeHTTP = "http"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Loader  LoaderConfig      `yaml:"loader"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	Watch   WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Loader.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig locates the markdown tree, the catalog data and images.
// An empty DataDir selects the catalog embedded in the binary.
type ContentConfig struct {
	Root      string `yaml:"root"`
	DataDir   string `yaml:"data_dir"`
	AssetsDir string `yaml:"assets_dir"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
	)
}

// LoaderConfig controls where long-form content is fetched from.
//
// Mode "fs" reads from Content.Root; mode "http" GETs BaseURL + base + path
// from a static host, bounded by Timeout. Bases overrides the per-kind base
// paths (blog, ctf, writeup, project).
type LoaderConfig struct {
	Mode    string            `yaml:"mode"`
	BaseURL string            `yaml:"base_url"`
	Timeout time.Duration     `yaml:"timeout"`
	Bases   map[string]string `yaml:"bases"`
}

// Validate validates the loader configuration.
func (c *LoaderConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = LoaderModeFS
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(LoaderModeFS, LoaderModeHTTP)),
		validation.Field(&c.BaseURL, validation.When(c.Mode == LoaderModeHTTP, validation.Required, is.URL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	); err != nil {
		return err
	}
	for k := range c.Bases {
		if !validKind(k) {
			return fmt.Errorf("loader: unknown content kind %q in bases", k)
		}
	}
	return nil
}

func validKind(k string) bool {
	for _, kind := range content.Kinds() {
		if string(kind) == k {
			return true
		}
	}
	return false
}

// ContentBases converts Bases to the loader's form.
func (c *LoaderConfig) ContentBases() content.Bases {
	out := make(content.Bases, len(c.Bases))
	for k, v := range c.Bases {
		out[content.Kind(k)] = v
	}
	return out
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration for POST /api/reload.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// WatchConfig toggles live reload of content and catalog files.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Root:      "./content",
			AssetsDir: "./content/assets",
		},
		Loader: LoaderConfig{
			Mode:    LoaderModeFS,
			Timeout: 10 * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: "./dossier.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Watch: WatchConfig{
			Enabled: true,
		},
	}
}
