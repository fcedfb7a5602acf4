package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Transports over which the MCP server can be served.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Server ServerConfig      `yaml:"server"`
	Agenda AgendaConfig      `yaml:"agenda"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Agenda.Validate(); err != nil {
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

// HTTPConfig holds HTTP server configuration, used by the http transport.
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

// ServerConfig selects how the MCP server is exposed.
//
// "stdio" (default) serves a single session over stdin/stdout, the way MCP
// hosts launch local servers. "http" serves the streamable-HTTP transport
// on App.HTTP.Port.
type ServerConfig struct {
	Transport string `yaml:"transport"`
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Transport == "" {
		c.Transport = TransportStdio
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Transport, validation.Required, validation.In(TransportStdio, TransportHTTP)),
	)
}

// AgendaConfig holds settings for dispatching x-callback-urls to Agenda.
//
// OpenCommand is the OS facility that hands a URL to its default handler
// ("open" on macOS). An empty value disables dispatch entirely: the Agenda
// tools then report success without leaving the process, which is the
// sanctioned stand-in on platforms without such a facility.
type AgendaConfig struct {
	OpenCommand string `yaml:"open_command"`
}

// Validate validates the Agenda configuration.
func (c *AgendaConfig) Validate() error {
	return nil
}

// Enabled returns true when URLs are actually handed to the OS.
func (c *AgendaConfig) Enabled() bool {
	return c.OpenCommand != ""
}

// AuthConfig holds authentication configuration for the http transport.
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
	// Normalise empty mode to "disabled" for backward compatibility.
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

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Server: ServerConfig{
			Transport: TransportStdio,
		},
		Agenda: AgendaConfig{
			OpenCommand: "open",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
