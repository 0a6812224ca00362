// Package config loads the on-disk configuration described in spec §6 into
// typed structs, following the field layout of TopConfig/MonitorConfig. The
// wire format is JSON (the CLI's `-c config.json` default), with an
// additional YAML loader path for local dev configs, matching the teacher's
// pkg/config preference for yaml.v3.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// DefaultConfigPath is the default path searched by the -c flag.
const DefaultConfigPath = "/etc/monitoring-agent-daemon/config.json"

// ServerConfig is the HTTP server block of TopConfig.
type ServerConfig struct {
	IP              string   `json:"ip"`
	Port            uint16   `json:"port"`
	Name            string   `json:"name"`
	CORSEnabled     bool     `json:"corsEnabled,omitempty"`
	CORSOrigins     []string `json:"corsOrigins,omitempty"`
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{IP: "127.0.0.1", Port: 65000, Name: "monitoring-agent-daemon"}
}

// DatabaseType enumerates the supported backing stores (spec §3 TopConfig).
type DatabaseType string

const (
	DatabasePostgres DatabaseType = "Postgres"
	DatabaseMysql    DatabaseType = "Mysql"
	DatabaseMaria    DatabaseType = "Maria"
)

// DatabaseConfig is the optional top-level database block, also reusable
// per-probe by the Database probe (spec §4.10).
type DatabaseConfig struct {
	Type          DatabaseType `json:"type"`
	Host          string       `json:"host"`
	Port          uint16       `json:"port"`
	DBName        string       `json:"database"`
	User          string       `json:"user"`
	Password      string       `json:"password"`
	MinConns      uint32       `json:"minConnections"`
	MaxConns      uint32       `json:"maxConnections"`
}

// NotificationConfig configures the new-error notification job (spec §4.13).
type NotificationConfig struct {
	SMTPHost           string   `json:"smtpHost"`
	SMTPPort           uint16   `json:"smtpPort"`
	From               string   `json:"from"`
	To                 []string `json:"to"`
	ResendAfterMinutes int      `json:"resendAfterMinutes"`
}

// MonitorConfig is one entry of TopConfig.monitors (spec §3).
type MonitorConfig struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description,omitempty"`
	Schedule    string                         `json:"schedule"`
	Store       storelevel.DatabaseStoreLevel  `json:"store"`
	Details     json.RawMessage                `json:"details"`
}

// TopConfig is the root configuration document (spec §3, §6).
type TopConfig struct {
	Server         ServerConfig         `json:"server"`
	Database       *DatabaseConfig      `json:"database,omitempty"`
	Monitors       []MonitorConfig      `json:"monitors"`
	Notification   *NotificationConfig  `json:"notification,omitempty"`
	RetentionHours int                  `json:"retentionHours,omitempty"`
}

// Load reads and parses the configuration file at path, dispatching on its
// extension: ".yaml"/".yml" is re-encoded to JSON before unmarshalling (dev
// configs), everything else (including the CLI's default ".json") is parsed
// directly. Missing file or malformed content are fatal configuration
// errors per spec §7.
func Load(path string) (*TopConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg := &TopConfig{Server: defaultServerConfig()}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// yamlToJSON re-encodes a YAML document to JSON by round-tripping through a
// generic value, so the rest of Load (and MonitorConfig.Details, a
// json.RawMessage) never has to know the file started as YAML.
func yamlToJSON(data []byte) ([]byte, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(generic))
}

// normalizeYAML recursively converts map[string]interface{} keys that
// yaml.v3 may produce as map[interface{}]interface{} under nested
// structures into JSON-marshalable map[string]interface{}.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, v := range val {
			out[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, v := range val {
			out[k] = normalizeYAML(v)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, v := range val {
			out[i] = normalizeYAML(v)
		}
		return out
	default:
		return val
	}
}

// validate checks the invariants from spec §3: probe names unique within a
// configuration.
func (c *TopConfig) validate() error {
	seen := make(map[string]struct{}, len(c.Monitors))
	for _, m := range c.Monitors {
		if m.Name == "" {
			return fmt.Errorf("monitor with empty name")
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("duplicate monitor name: %s", m.Name)
		}
		seen[m.Name] = struct{}{}
		if m.Schedule == "" {
			return fmt.Errorf("monitor %s: missing schedule", m.Name)
		}
	}
	return nil
}
