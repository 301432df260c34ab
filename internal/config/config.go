// Package config loads service configuration from a YAML file with
// environment variable overrides for deployment secrets.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/icekidtech/information-systems/internal/notify"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no config path is supplied.
const DefaultConfigPath = "config.yaml"

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// UnmarshalYAML accepts the expiry as a duration string such as "24h".
func (j *JWTConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret string `yaml:"secret"`
		Expiry string `yaml:"expiry"`
	}
	if errDecode := value.Decode(&raw); errDecode != nil {
		return errDecode
	}
	j.Secret = raw.Secret
	if expiry := strings.TrimSpace(raw.Expiry); expiry != "" {
		parsed, errParse := time.ParseDuration(expiry)
		if errParse != nil {
			return fmt.Errorf("jwt expiry %q: %w", expiry, errParse)
		}
		j.Expiry = parsed
	}
	return nil
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds the storage DSN.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SMTPConfig holds passcode mail delivery settings.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// AdminConfig describes the bootstrap administrator account.
type AdminConfig struct {
	Name       string `yaml:"name"`
	ExternalID string `yaml:"external_id"`
	Email      string `yaml:"email"`
	Passcode   string `yaml:"passcode"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// UploadConfig holds course material storage settings.
type UploadConfig struct {
	Dir string `yaml:"dir"`
}

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Admin    AdminConfig    `yaml:"admin"`
	Log      LogConfig      `yaml:"log"`
	Uploads  UploadConfig   `yaml:"uploads"`
}

// ResolveConfigPath returns the effective config path.
func ResolveConfigPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed != "" {
		return trimmed
	}
	if env := strings.TrimSpace(os.Getenv("INFOSYS_CONFIG")); env != "" {
		return env
	}
	return DefaultConfigPath
}

// Load reads, parses and normalizes the configuration file.
//
// A missing file is not an error; defaults and environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, errRead := os.ReadFile(path)
	if errRead != nil && !os.IsNotExist(errRead) {
		return nil, fmt.Errorf("config: read %s: %w", path, errRead)
	}
	if errRead == nil {
		if errParse := yaml.Unmarshal(data, cfg); errParse != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, errParse)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("config: jwt secret is required (jwt.secret or INFOSYS_JWT_SECRET)")
	}
	return cfg, nil
}

// applyEnvOverrides lets deployment secrets come from the environment.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("INFOSYS_DATABASE_DSN")); v != "" {
		c.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("INFOSYS_JWT_SECRET")); v != "" {
		c.JWT.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv("INFOSYS_SMTP_PASSWORD")); v != "" {
		c.SMTP.Password = v
	}
	if v := strings.TrimSpace(os.Getenv("INFOSYS_ADMIN_PASSCODE")); v != "" {
		c.Admin.Passcode = v
	}
}

// applyDefaults fills unset fields with working defaults.
func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = ":8080"
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		c.Database.DSN = "data/infosys.db"
	}
	if c.JWT.Expiry <= 0 {
		c.JWT.Expiry = 24 * time.Hour
	}
	if strings.TrimSpace(c.Admin.Name) == "" {
		c.Admin.Name = "Department Admin"
	}
	if strings.TrimSpace(c.Admin.ExternalID) == "" {
		c.Admin.ExternalID = "admin"
	}
	if strings.TrimSpace(c.Admin.Email) == "" {
		c.Admin.Email = "admin@example.edu"
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "info"
	}
	if strings.TrimSpace(c.Uploads.Dir) == "" {
		c.Uploads.Dir = "data/uploads"
	}
}

// NotifySMTP returns the notify-layer view of the SMTP settings.
func (c *Config) NotifySMTP() notify.SMTPConfig {
	return notify.SMTPConfig{
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		From:     c.SMTP.From,
	}
}
