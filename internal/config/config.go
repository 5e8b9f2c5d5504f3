package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Catalog sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatMermaid = "mermaid"
	FormatSQL     = "sql"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Config represents the top-level YAML configuration.
type Config struct {
	Catalog     Catalog `yaml:"catalog"`
	Output      Output  `yaml:"output"`
	Log         Log     `yaml:"log"`
	MetricsFile string  `yaml:"metrics_file"`
}

// Catalog describes where course records come from.
type Catalog struct {
	Source     string     `yaml:"source"` // "file" or "postgres"
	Path       string     `yaml:"path"`   // "-" reads stdin
	Format     string     `yaml:"format"` // "json" or "yaml"; inferred from Path when empty
	Connection Connection `yaml:"connection"`
	Table      string     `yaml:"table"`
	OrderBy    string     `yaml:"order_by"`
}

// Connection holds database connection parameters.
type Connection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// Output controls where and how the analysis result is written.
type Output struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Log controls logger setup.
type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// DSN builds a PostgreSQL connection string.
func (c *Connection) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
	)
}

// Default returns a config with every default filled in, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	_ = cfg.Validate()
	return cfg
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyEnv fills in empty Connection fields from environment variables.
// YAML values take precedence; env vars are used only as fallback.
func (c *Config) applyEnv() {
	conn := &c.Catalog.Connection
	if conn.Host == "" {
		conn.Host = envOr("PGHOST", "POSTGRES_HOST")
	}
	if conn.Port == 0 {
		if s := envOr("PGPORT", "POSTGRES_PORT"); s != "" {
			if p, err := strconv.Atoi(s); err == nil {
				conn.Port = p
			}
		}
	}
	if conn.Database == "" {
		conn.Database = envOr("PGDATABASE", "POSTGRES_DB")
	}
	if conn.User == "" {
		conn.User = envOr("PGUSER", "POSTGRES_USER")
	}
	if conn.Password == "" {
		conn.Password = envOr("PGPASSWORD", "POSTGRES_PASSWORD")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = envOr("PGSSLMODE")
	}
}

// envOr returns the first non-empty value from the given env var names.
func envOr(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// Validate fills defaults and checks the fields the selected source and
// output format need. It is safe to call again after flags override values.
func (c *Config) Validate() error {
	if c.Catalog.Source == "" {
		c.Catalog.Source = SourceFile
	}
	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.Format != "" && c.Catalog.Format != "json" && c.Catalog.Format != "yaml" {
			return fmt.Errorf("catalog.format must be json or yaml, got %q", c.Catalog.Format)
		}
	case SourcePostgres:
		if err := c.validatePostgres(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("catalog.source must be %q or %q, got %q", SourceFile, SourcePostgres, c.Catalog.Source)
	}

	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}
	switch c.Output.Format {
	case FormatJSON, FormatText, FormatMermaid, FormatSQL:
	default:
		return fmt.Errorf("unknown output.format: %s (supported: json, text, mermaid, sql)", c.Output.Format)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level: %s", c.Log.Level)
	}
	return nil
}

func (c *Config) validatePostgres() error {
	conn := &c.Catalog.Connection
	if conn.Host == "" {
		return fmt.Errorf("catalog.connection.host is required")
	}
	if conn.Port == 0 {
		conn.Port = 5432
	}
	if conn.Database == "" {
		return fmt.Errorf("catalog.connection.database is required")
	}
	if conn.User == "" {
		return fmt.Errorf("catalog.connection.user is required")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = "disable"
	}
	if c.Catalog.Table == "" {
		c.Catalog.Table = "courses"
	}
	if c.Catalog.OrderBy == "" {
		c.Catalog.OrderBy = "code"
	}
	if !identPattern.MatchString(c.Catalog.Table) {
		return fmt.Errorf("catalog.table %q is not a valid identifier", c.Catalog.Table)
	}
	if !identPattern.MatchString(c.Catalog.OrderBy) {
		return fmt.Errorf("catalog.order_by %q is not a valid identifier", c.Catalog.OrderBy)
	}
	return nil
}
