package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project root.
const FileName = ".context-engine.yaml"

// Logical command names every project has.
const (
	CommandCheck = "check"
	CommandTest  = "test"
	CommandBuild = "build"
	CommandRun   = "run"
)

// Logical document keys every project has.
const (
	DocRules  = "rules"
	DocTasks  = "tasks"
	DocLog    = "log"
	DocIndex  = "index"
	DocReadme = "readme"
)

// Delegation holds the subagent settings templates may reference.
type Delegation struct {
	DefaultModel string `yaml:"default_model"`
	Timeout      int    `yaml:"timeout"`
}

// ProjectConfig is the resolved configuration for one project root.
// Values handed out by a Resolver are copies; mutating them has no effect
// on later lookups.
type ProjectConfig struct {
	ProjectPath string            `yaml:"-"`
	Commands    map[string]string `yaml:"commands"`
	Docs        map[string]string `yaml:"docs"`
	Delegation  Delegation        `yaml:"delegation"`
}

// Command returns the shell command configured for name.
func (c *ProjectConfig) Command(name string) (string, bool) {
	cmd, ok := c.Commands[name]
	return cmd, ok
}

// DocPath returns the project-relative path configured for a document key.
func (c *ProjectConfig) DocPath(key string) (string, bool) {
	p, ok := c.Docs[key]
	return p, ok
}

// Lookup resolves a dotted reference such as "commands.test" or
// "delegation.timeout" to its string value.
func (c *ProjectConfig) Lookup(ref string) (string, bool) {
	section, name, nested := strings.Cut(ref, ".")
	if !nested {
		if section == "project_path" {
			return c.ProjectPath, true
		}
		return "", false
	}
	if strings.Contains(name, ".") {
		return "", false
	}

	switch section {
	case "commands":
		return c.Command(name)
	case "docs":
		return c.DocPath(name)
	case "delegation":
		switch name {
		case "default_model":
			return c.Delegation.DefaultModel, true
		case "timeout":
			return strconv.Itoa(c.Delegation.Timeout), true
		}
	}
	return "", false
}

// Clone returns a deep copy.
func (c *ProjectConfig) Clone() *ProjectConfig {
	out := *c
	out.Commands = copyMap(c.Commands)
	out.Docs = copyMap(c.Docs)
	return &out
}

// YAML renders the resolved configuration in the file's own format.
func (c *ProjectConfig) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
