package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/table"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsoncore
type Config struct {
	Strategy string       `yaml:"strategy"`
	Output   OutputConfig `yaml:"output"`
	Parser   ParserConfig `yaml:"parser"`
	Keys     KeysConfig   `yaml:"keys"`
	Dev      DevConfig    `yaml:"dev"`
}

// OutputConfig controls how documents are written
type OutputConfig struct {
	Pretty          bool   `yaml:"pretty"`
	Indent          string `yaml:"indent"`
	TrailingNewline bool   `yaml:"trailing_newline"`
}

// ParserConfig controls how documents are built
type ParserConfig struct {
	BulkInsert  bool `yaml:"bulk_insert"`
	ShrinkToFit bool `yaml:"shrink_to_fit"`
}

// Key cases accepted by keys.case
const (
	CaseNone           = ""
	CaseSnake          = "snake"
	CaseScreamingSnake = "screaming_snake"
	CaseCamel          = "camel"
	CaseLowerCamel     = "lower_camel"
	CaseKebab          = "kebab"
)

// KeysConfig controls member key rewriting
type KeysConfig struct {
	Case          string            `yaml:"case"`
	FieldMappings map[string]string `yaml:"field_mappings"`
	Drop          []KeyPattern      `yaml:"drop"`
}

// KeyPattern selects member keys by regular expression
type KeyPattern struct {
	Pattern string `yaml:"pattern"`
	Comment string `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Strategy: table.StrategySorted.String(),
		Output: OutputConfig{
			Pretty:          false,
			Indent:          "  ",
			TrailingNewline: true,
		},
		Parser: ParserConfig{
			BulkInsert:  false,
			ShrinkToFit: false,
		},
		Keys: KeysConfig{
			Case:          CaseNone,
			FieldMappings: make(map[string]string),
			Drop:          []KeyPattern{},
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsoncore.yml", ".jsoncore.yaml", "jsoncore.yml", "jsoncore.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated settings and compiles key patterns
func (c *Config) Validate() error {
	if _, err := c.ObjectStrategy(); err != nil {
		return err
	}

	switch c.Keys.Case {
	case CaseNone, CaseSnake, CaseScreamingSnake, CaseCamel, CaseLowerCamel, CaseKebab:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown key case %q", c.Keys.Case), nil)
	}

	return c.compilePatterns()
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Keys.Drop {
		p := &c.Keys.Drop[i]
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("invalid drop pattern '%s'", p.Pattern), err)
		}
		p.regex = regex
	}
	return nil
}

// MatchesKey checks if this pattern matches the given member key
func (kp *KeyPattern) MatchesKey(key string) bool {
	if kp.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(kp.Pattern)
		if err != nil {
			return false
		}
		kp.regex = regex
	}
	return kp.regex.MatchString(key)
}

// ObjectStrategy returns the member strategy named by Strategy
func (c *Config) ObjectStrategy() (table.Strategy, error) {
	return table.ParseStrategy(c.Strategy)
}

// GetKeyName returns the rewritten name for a member key, applying
// field mappings first and then the configured case
func (c *Config) GetKeyName(key string) string {
	if mapped, exists := c.Keys.FieldMappings[key]; exists {
		return mapped
	}

	switch c.Keys.Case {
	case CaseSnake:
		return strcase.ToSnake(key)
	case CaseScreamingSnake:
		return strcase.ToScreamingSnake(key)
	case CaseCamel:
		return strcase.ToCamel(key)
	case CaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case CaseKebab:
		return strcase.ToKebab(key)
	}

	return key
}

// ShouldDropKey checks if members with this key are removed
func (c *Config) ShouldDropKey(key string) bool {
	for i := range c.Keys.Drop {
		if c.Keys.Drop[i].MatchesKey(key) {
			return true
		}
	}
	return false
}

// RewritesKeys reports whether any key rewriting is configured
func (c *Config) RewritesKeys() bool {
	return c.Keys.Case != CaseNone || len(c.Keys.FieldMappings) > 0 || len(c.Keys.Drop) > 0
}

// MergeConfigs merges CLI overrides into a base config.
// Non-empty strings and true booleans from override take precedence; a
// flag can switch a setting on but not off.
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.Strategy != "" {
		merged.Strategy = override.Strategy
	}
	if override.Keys.Case != "" {
		merged.Keys.Case = override.Keys.Case
	}
	if override.Output.Indent != "" {
		merged.Output.Indent = override.Output.Indent
	}

	merged.Output.Pretty = base.Output.Pretty || override.Output.Pretty
	merged.Parser.BulkInsert = base.Parser.BulkInsert || override.Parser.BulkInsert
	merged.Parser.ShrinkToFit = base.Parser.ShrinkToFit || override.Parser.ShrinkToFit
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// CLIOverrides holds the command-line settings that take precedence over the
// config file
type CLIOverrides struct {
	Strategy    string
	KeyCase     string
	Indent      string
	Pretty      bool
	BulkInsert  bool
	ShrinkToFit bool
	Debug       bool
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	override := &Config{
		Strategy: cli.Strategy,
		Output:   OutputConfig{Pretty: cli.Pretty, Indent: cli.Indent},
		Parser:   ParserConfig{BulkInsert: cli.BulkInsert, ShrinkToFit: cli.ShrinkToFit},
		Keys:     KeysConfig{Case: cli.KeyCase},
		Dev:      DevConfig{Debug: cli.Debug},
	}
	cfg = MergeConfigs(cfg, override)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
