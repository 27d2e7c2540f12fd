package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/inventory/pkg/application/services/report"
	"github.com/vsinha/inventory/pkg/application/services/view"
	"github.com/vsinha/inventory/pkg/infrastructure/logging"
)

// ErrInvalidConfiguration is wrapped by every configuration error
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config holds configuration for the inventory command.
//
// Values are layered: defaults, then the optional config file, then
// INVENTORY_* environment variables (including a .env file), then flags
// given explicitly on the command line.
type Config struct {
	ConfigFile string `json:"-" yaml:"-"`

	// Record source; exactly one of DataFile, RedisAddr, PostgresDSN
	DataFile      string `json:"data_file" yaml:"data_file"`
	RedisAddr     string `json:"redis_addr" yaml:"redis_addr"`
	RedisKey      string `json:"redis_key" yaml:"redis_key"`
	PostgresDSN   string `json:"postgres_dsn" yaml:"postgres_dsn"`
	PostgresTable string `json:"postgres_table" yaml:"postgres_table"`
	ImportFile    string `json:"import_file" yaml:"import_file"`

	// One optional mutation per run
	Add    string `json:"-" yaml:"-"`
	Update string `json:"-" yaml:"-"`
	Remove string `json:"-" yaml:"-"`

	// View
	Search    string `json:"search" yaml:"search"`
	Category  string `json:"category" yaml:"category"`
	Kind      string `json:"kind" yaml:"kind"`
	Status    string `json:"status" yaml:"status"`
	SortField string `json:"sort" yaml:"sort"`
	SortOrder string `json:"order" yaml:"order"`
	Group     string `json:"group" yaml:"group"`
	Locale    string `json:"locale" yaml:"locale"`

	// Output
	ExportFile string `json:"export_file" yaml:"export_file"`
	Format     string `json:"format" yaml:"format"`
	LogLevel   string `json:"log_level" yaml:"log_level"`
	Verbose    bool   `json:"verbose" yaml:"verbose"`
	Help       bool   `json:"-" yaml:"-"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Kind:      view.All,
		Status:    view.All,
		SortOrder: "asc",
		Group:     string(report.ByCategory),
		Format:    "text",
		LogLevel:  "info",
	}
}

// BindFlags registers every command line flag on flags, writing into c. The
// current values of c become the flag defaults.
func BindFlags(flags *flag.FlagSet, c *Config) {
	flags.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Path to a YAML or JSON config file")
	flags.StringVar(&c.DataFile, "data", c.DataFile, "Path to the JSON records file")
	flags.StringVar(&c.RedisAddr, "redis", c.RedisAddr, "Redis address holding the records")
	flags.StringVar(&c.RedisKey, "redis-key", c.RedisKey, "Redis key holding the records")
	flags.StringVar(&c.PostgresDSN, "postgres", c.PostgresDSN, "PostgreSQL connection string")
	flags.StringVar(&c.PostgresTable, "postgres-table", c.PostgresTable, "PostgreSQL table holding the records")
	flags.StringVar(&c.ImportFile, "import", c.ImportFile, "Replace the records with the contents of a CSV file")
	flags.StringVar(&c.Add, "add", c.Add, "Add a record given as JSON")
	flags.StringVar(&c.Update, "update", c.Update, "Update a record: <id>=<JSON patch>")
	flags.StringVar(&c.Remove, "remove", c.Remove, "Remove the record with this id")
	flags.StringVar(&c.Search, "search", c.Search, "Case-insensitive text search")
	flags.StringVar(&c.Category, "category", c.Category, "Exact category to show")
	flags.StringVar(&c.Kind, "kind", c.Kind, "Item kind to show: product, equipment, all")
	flags.StringVar(&c.Status, "status", c.Status, "Stock status to show: OutOfStock, LowStock, InStock, all")
	flags.StringVar(&c.SortField, "sort", c.SortField, "Sort field: name, category, quantity, unitPrice")
	flags.StringVar(&c.SortOrder, "order", c.SortOrder, "Sort order: asc, desc")
	flags.StringVar(&c.Group, "group", c.Group, "Aggregate dimension: category, status, itemKind")
	flags.StringVar(&c.Locale, "locale", c.Locale, "BCP 47 locale used for sorting")
	flags.StringVar(&c.ExportFile, "export", c.ExportFile, "Write the current view as CSV to this path")
	flags.StringVar(&c.Format, "format", c.Format, "Output format: text, json")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	flags.BoolVar(&c.Verbose, "verbose", c.Verbose, "Enable verbose output")
	flags.BoolVar(&c.Help, "help", c.Help, "Show help message")
}

// ParseConfig builds a Config from args. The first pass only locates the
// config file; the second re-applies args over file and environment values
// so only flags given explicitly override them.
func ParseConfig(args []string, dotenvPaths ...string) (Config, error) {
	scratch := DefaultConfig()
	first := flag.NewFlagSet("inventory", flag.ContinueOnError)
	first.SetOutput(io.Discard)
	BindFlags(first, &scratch)
	if err := first.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	cfg := DefaultConfig()
	if scratch.ConfigFile != "" {
		if err := cfg.LoadFromFile(scratch.ConfigFile); err != nil {
			return Config{}, err
		}
	}
	if err := LoadDotEnv(dotenvPaths...); err != nil {
		return Config{}, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return Config{}, err
	}

	second := flag.NewFlagSet("inventory", flag.ContinueOnError)
	second.SetOutput(io.Discard)
	BindFlags(second, &cfg)
	if err := second.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from each existing path into the
// process environment without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// LoadFromFile overlays values from a .json, .yaml or .yml file
func (c *Config) LoadFromFile(path string) error {
	cleanPath := filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %s: %w", ext, ErrInvalidConfiguration)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %v: %w", err, ErrInvalidConfiguration)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %v: %w", err, ErrInvalidConfiguration)
		}
	}
	c.ConfigFile = cleanPath
	return nil
}

// LoadFromEnv overlays INVENTORY_* environment variables
func (c *Config) LoadFromEnv() error {
	strs := map[string]*string{
		"INVENTORY_DATA_FILE":      &c.DataFile,
		"INVENTORY_REDIS_ADDR":     &c.RedisAddr,
		"INVENTORY_REDIS_KEY":      &c.RedisKey,
		"INVENTORY_POSTGRES_DSN":   &c.PostgresDSN,
		"INVENTORY_POSTGRES_TABLE": &c.PostgresTable,
		"INVENTORY_IMPORT_FILE":    &c.ImportFile,
		"INVENTORY_SEARCH":         &c.Search,
		"INVENTORY_CATEGORY":       &c.Category,
		"INVENTORY_KIND":           &c.Kind,
		"INVENTORY_STATUS":         &c.Status,
		"INVENTORY_SORT":           &c.SortField,
		"INVENTORY_ORDER":          &c.SortOrder,
		"INVENTORY_GROUP":          &c.Group,
		"INVENTORY_LOCALE":         &c.Locale,
		"INVENTORY_EXPORT_FILE":    &c.ExportFile,
		"INVENTORY_FORMAT":         &c.Format,
		"INVENTORY_LOG_LEVEL":      &c.LogLevel,
	}
	for key, field := range strs {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("INVENTORY_VERBOSE"); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("INVENTORY_VERBOSE=%q is not a boolean: %w", v, ErrInvalidConfiguration)
		}
		c.Verbose = verbose
	}
	return nil
}

// Validate checks source selection and every enumerated option
func (c *Config) Validate() error {
	sources := 0
	for _, s := range []string{c.DataFile, c.RedisAddr, c.PostgresDSN} {
		if s != "" {
			sources++
		}
	}
	if sources == 0 && c.ImportFile == "" {
		return fmt.Errorf("must specify one of -data, -redis, -postgres or -import: %w", ErrInvalidConfiguration)
	}
	if sources > 1 {
		return fmt.Errorf("-data, -redis and -postgres are mutually exclusive: %w", ErrInvalidConfiguration)
	}

	mutations := 0
	for _, s := range []string{c.Add, c.Update, c.Remove} {
		if s != "" {
			mutations++
		}
	}
	if mutations > 1 {
		return fmt.Errorf("-add, -update and -remove are mutually exclusive: %w", ErrInvalidConfiguration)
	}
	if c.Update != "" && !strings.Contains(c.Update, "=") {
		return fmt.Errorf("-update must be <id>=<JSON patch>: %w", ErrInvalidConfiguration)
	}

	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("unsupported output format %s: %w", c.Format, ErrInvalidConfiguration)
	}

	checks := []func() error{
		func() error { _, err := view.ParseKindFilter(c.Kind); return err },
		func() error { _, err := view.ParseStatusFilter(c.Status); return err },
		func() error { _, err := view.ParseSortField(c.SortField); return err },
		func() error { _, err := view.ParseSortOrder(c.SortOrder); return err },
		func() error { _, err := report.ParseDimension(c.Group); return err },
		func() error { _, err := view.NewEngineForLocale(c.Locale); return err },
		func() error { _, err := logging.ParseLevel(c.LogLevel); return err },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return fmt.Errorf("%v: %w", err, ErrInvalidConfiguration)
		}
	}
	return nil
}
