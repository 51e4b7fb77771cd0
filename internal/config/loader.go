package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/golobby/cast"
	"github.com/thruflo/context-engine/internal/logging"
	"gopkg.in/yaml.v3"
)

// Default values for ProjectConfig.
const (
	DefaultModel           = "gemini-3-flash-preview"
	DefaultTimeoutSeconds  = 300
	defaultCommandTemplate = "echo 'No %s command configured'"
)

// DefaultConfigYAML is written by `context-engine init`.
const DefaultConfigYAML = `# context-engine project configuration

commands:
  # Static checks (lint, typecheck)
  check: "echo 'No check command configured'"
  # Test suite
  test: "echo 'No test command configured'"
  build: "echo 'No build command configured'"
  run: "echo 'No run command configured'"

docs:
  # Paths are relative to the project root
  rules: AGENT.md
  tasks: WORK_PLAN.md
  log: WORK_LOG.md
  index: INDEX.md
  readme: README.md

delegation:
  default_model: gemini-3-flash-preview
  # Seconds
  timeout: 300
`

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// DefaultCommands returns the command mapping used when nothing is declared.
func DefaultCommands() map[string]string {
	out := make(map[string]string, 4)
	for _, name := range []string{CommandCheck, CommandTest, CommandBuild, CommandRun} {
		out[name] = fmt.Sprintf(defaultCommandTemplate, name)
	}
	return out
}

// DefaultDocs returns the conventional document paths.
func DefaultDocs() map[string]string {
	return map[string]string{
		DocRules:  "AGENT.md",
		DocTasks:  "WORK_PLAN.md",
		DocLog:    "WORK_LOG.md",
		DocIndex:  "INDEX.md",
		DocReadme: "README.md",
	}
}

// DefaultDelegation returns the delegation defaults.
func DefaultDelegation() Delegation {
	return Delegation{
		DefaultModel: DefaultModel,
		Timeout:      DefaultTimeoutSeconds,
	}
}

// Default returns a ProjectConfig built entirely from defaults.
func Default(projectPath string) *ProjectConfig {
	return &ProjectConfig{
		ProjectPath: projectPath,
		Commands:    DefaultCommands(),
		Docs:        DefaultDocs(),
		Delegation:  DefaultDelegation(),
	}
}

// ConfigError reports a malformed configuration file and the offending key.
type ConfigError struct {
	Key     string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Key, e.Message)
}

// IsConfigError checks if an error is a ConfigError.
func IsConfigError(err error) bool {
	var ce ConfigError
	return errors.As(err, &ce)
}

// Load reads .context-engine.yaml from projectRoot and overlays it on the
// defaults. A missing file is not an error.
func Load(projectRoot string) (*ProjectConfig, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	cfg := Default(root)
	configPath := filepath.Join(root, FileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("no config file, using defaults", "root", root)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.overlay(data); err != nil {
		return nil, err
	}

	logging.Debug("config loaded", "path", configPath)
	return cfg, nil
}

// Parse overlays raw YAML onto defaults without touching the file system.
func Parse(projectRoot string, data []byte) (*ProjectConfig, error) {
	cfg := Default(projectRoot)
	if err := cfg.overlay(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ProjectConfig) overlay(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ConfigError{Key: FileName, Message: fmt.Sprintf("malformed YAML: %v", err)}
	}

	// Empty file or a bare null document.
	if len(doc.Content) == 0 || isNull(doc.Content[0]) {
		return nil
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return ConfigError{Key: "(root)", Message: "must be a mapping of sections"}
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i].Value, top.Content[i+1]

		var err error
		switch key {
		case "commands":
			err = overlayStrings(key, value, c.Commands)
		case "docs":
			err = overlayStrings(key, value, c.Docs)
		case "delegation":
			err = c.overlayDelegation(value)
		default:
			err = ConfigError{Key: key, Message: "unknown top-level key (expected commands, docs, or delegation)"}
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// overlayStrings copies a mapping of name -> string onto dst. Names outside
// the default set are kept so templates can reference them.
func overlayStrings(section string, node *yaml.Node, dst map[string]string) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return ConfigError{Key: section, Message: "must be a mapping"}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		field := section + "." + name

		if !keyPattern.MatchString(name) {
			return ConfigError{Key: field, Message: "invalid key name"}
		}
		if value.Kind != yaml.ScalarNode || isNull(value) {
			return ConfigError{Key: field, Message: "must be a string"}
		}
		if strings.TrimSpace(value.Value) == "" {
			return ConfigError{Key: field, Message: "must not be empty"}
		}

		dst[name] = value.Value
	}

	return nil
}

func (c *ProjectConfig) overlayDelegation(node *yaml.Node) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return ConfigError{Key: "delegation", Message: "must be a mapping"}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		field := "delegation." + name

		switch name {
		case "default_model":
			if value.Kind != yaml.ScalarNode || strings.TrimSpace(value.Value) == "" || isNull(value) {
				return ConfigError{Key: field, Message: "must be a non-empty string"}
			}
			c.Delegation.DefaultModel = value.Value
		case "timeout":
			timeout, err := castTimeout(value)
			if err != nil {
				return ConfigError{Key: field, Message: err.Error()}
			}
			c.Delegation.Timeout = timeout
		default:
			logging.Debug("ignoring unknown config key", "key", field)
		}
	}

	return nil
}

// castTimeout accepts both 600 and "600".
func castTimeout(node *yaml.Node) (int, error) {
	if node.Kind != yaml.ScalarNode || isNull(node) {
		return 0, errors.New("must be a positive integer")
	}

	v, err := cast.FromType(strings.TrimSpace(node.Value), reflect.TypeOf(0))
	if err != nil {
		return 0, fmt.Errorf("must be a positive integer, got %q", node.Value)
	}

	timeout, ok := v.(int)
	if !ok || timeout <= 0 {
		return 0, fmt.Errorf("must be a positive integer, got %q", node.Value)
	}
	return timeout, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
