// Package workflow expands workflow prompt templates against a project's
// configuration and documents.
//
// The placeholder grammar is closed: a dotted reference into
// the configuration, or read_to_text applied to one. Anything else fails the
// whole render. Expansion is a single pass, so document content that happens
// to contain {{ }} is copied through untouched.
package workflow

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/thruflo/context-engine/internal/config"
	"github.com/thruflo/context-engine/internal/docs"
	"github.com/thruflo/context-engine/internal/logging"
)

// ErrUnknownWorkflow is returned when no template exists for a name.
var ErrUnknownWorkflow = errors.New("unknown workflow")

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Options adjust a rendered workflow.
type Options struct {
	// TaskID is shown as the active task above the prompt.
	TaskID string
	// Requirement is shown above the prompt, for planning workflows.
	Requirement string
}

// Engine renders templates. It keeps no state between renders beyond the
// config resolver it was given.
type Engine struct {
	resolver  *config.Resolver
	templates fs.FS
}

// NewEngine creates an Engine that loads named workflows from templates.
func NewEngine(resolver *config.Resolver, templates fs.FS) *Engine {
	return &Engine{resolver: resolver, templates: templates}
}

// Render expands templateText for the project at projectRoot.
func (e *Engine) Render(templateText, projectRoot string) (string, error) {
	cfg, err := e.resolver.Resolve(projectRoot)
	if err != nil {
		return "", err
	}
	return Expand(templateText, cfg)
}

// Expand substitutes every placeholder in text using cfg. Either every
// placeholder resolves and the full result is returned, or nothing is.
func Expand(text string, cfg *config.ProjectConfig) (string, error) {
	placeholders, err := Scan(text)
	if err != nil {
		return "", err
	}

	values := make([]string, len(placeholders))
	for i, ph := range placeholders {
		v, err := resolve(ph, cfg)
		if err != nil {
			return "", err
		}
		values[i] = v
	}

	var sb strings.Builder
	last := 0
	for i, ph := range placeholders {
		sb.WriteString(text[last:ph.Start])
		sb.WriteString(values[i])
		last = ph.End
	}
	sb.WriteString(text[last:])

	return sb.String(), nil
}

func resolve(ph Placeholder, cfg *config.ProjectConfig) (string, error) {
	value, ok := cfg.Lookup(ph.Ref)
	if !ok {
		return "", TemplateError{Placeholder: ph.Raw, Reason: fmt.Sprintf("unknown reference %q", ph.Ref)}
	}

	switch ph.Func {
	case "":
		return value, nil
	case FuncReadToText:
		var content string
		var err error
		if key, isDoc := strings.CutPrefix(ph.Ref, "docs."); isDoc {
			content, err = docs.Read(cfg.ProjectPath, cfg, key)
		} else {
			content, err = docs.ReadPath(cfg.ProjectPath, value, ph.Ref)
		}
		if err != nil {
			return "", fmt.Errorf("%s: %w", ph.Raw, err)
		}
		return content, nil
	default:
		return "", TemplateError{Placeholder: ph.Raw, Reason: fmt.Sprintf("unknown function %q", ph.Func)}
	}
}

// Load returns the raw template text for a workflow. name may carry a .md
// suffix.
func (e *Engine) Load(name string) (string, error) {
	name = strings.TrimSuffix(name, ".md")
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownWorkflow, name)
	}

	data, err := fs.ReadFile(e.templates, name+".md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrUnknownWorkflow, name)
		}
		return "", fmt.Errorf("failed to read workflow %s: %w", name, err)
	}
	return string(data), nil
}

// List returns the available workflow names, sorted.
func (e *Engine) List() ([]string, error) {
	files, err := fs.Glob(e.templates, "*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f, ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// RenderWorkflow loads and renders a named workflow.
//
// When a referenced document is missing, the returned text is a short prompt
// telling the agent to create it, and the error is still returned so callers
// can tell this apart from a successful render.
func (e *Engine) RenderWorkflow(name, projectRoot string, opts Options) (string, error) {
	log := logging.With("workflow", name)

	text, err := e.Load(name)
	if err != nil {
		return "", err
	}

	out, err := e.Render(text, projectRoot)
	if err != nil {
		var missing docs.DocumentNotFoundError
		if errors.As(err, &missing) {
			log.Warn("workflow references a missing document", "key", missing.Key, "path", missing.Path)
			return MissingDocumentPrompt(name, missing), err
		}
		return "", err
	}

	if opts.Requirement != "" {
		out = fmt.Sprintf("# Requirement\n\n%s\n\n---\n\n%s", opts.Requirement, out)
	}
	if opts.TaskID != "" {
		out = fmt.Sprintf("# Active Task: %s\n\n---\n\n%s", opts.TaskID, out)
	}

	log.Debug("workflow rendered", "bytes", len(out))
	return out, nil
}

func configRef(key string) string {
	if strings.Contains(key, ".") {
		return key
	}
	return "docs." + key
}

// MissingDocumentPrompt is the text returned in place of a workflow whose
// document could not be found.
func MissingDocumentPrompt(workflow string, missing docs.DocumentNotFoundError) string {
	return fmt.Sprintf(`# Missing Document

The %q workflow needs the %s document, which does not exist yet.

Create %s and then run %q again. The path comes from %s in .context-engine.yaml.
Do not continue with the workflow until the document exists.
`, workflow, missing.Key, missing.Path, workflow, configRef(missing.Key))
}
