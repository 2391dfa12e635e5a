package card

// YAML-defined card templates.
//
// A template names a card layout once and renders it many times with
// parameters substituted into "{{name}}" placeholders:
//
//	name: raid-countdown
//	theme: warning
//	params:
//	  - name: title
//	    required: true
//	  - name: end
//	    required: true
//	modules:
//	  - type: header
//	    text: "{{title}}"
//	  - type: countdown
//	    mode: hour
//	    end: "{{end}}"

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kookbot/kook-go/pkg/domain"
)

// ─────────────────────────────────────────────────────────────────────────────
// Template schema
// ─────────────────────────────────────────────────────────────────────────────

// Template is the YAML schema for a reusable card layout.
type Template struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Theme       Theme            `yaml:"theme,omitempty"`
	Size        Size             `yaml:"size,omitempty"`
	Params      []TemplateParam  `yaml:"params"`
	Modules     []TemplateModule `yaml:"modules"`

	// Set by the loader, not in YAML.
	SourceFile string `yaml:"-"`
}

// TemplateParam describes a required or optional render parameter.
type TemplateParam struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required"`
	Default     string `yaml:"default,omitempty"`
}

// TemplateModule is one module of a template. Start and End accept
// millisecond timestamps or RFC 3339 times after substitution.
type TemplateModule struct {
	Type  string `yaml:"type"`
	Text  string `yaml:"text,omitempty"`
	Mode  string `yaml:"mode,omitempty"`
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

// Registry is a thread-safe store of loaded card templates.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*Template),
	}
}

// Load reads all *.yaml and *.yml files from dir and registers them.
// Errors in individual files are collected but don't abort loading.
func (r *Registry) Load(dir string) (int, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, []error{fmt.Errorf("cannot read template dir %s: %w", dir, err)}
	}

	loaded := 0
	var errs []error

	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		tmpl, err := LoadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", e.Name(), err))
			continue
		}
		r.Register(tmpl)
		loaded++
	}

	return loaded, errs
}

// LoadFile parses a single YAML template file.
func LoadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tmpl, err := Parse(data)
	if err != nil {
		return nil, err
	}
	tmpl.SourceFile = path
	return tmpl, nil
}

// Parse decodes one YAML template.
func Parse(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if tmpl.Name == "" {
		return nil, fmt.Errorf("template has no 'name' field")
	}
	if len(tmpl.Modules) == 0 {
		return nil, fmt.Errorf("template '%s' has no modules", tmpl.Name)
	}
	return &tmpl, nil
}

// Register adds or replaces a template in the registry.
func (r *Registry) Register(tmpl *Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[tmpl.Name] = tmpl
}

// Get retrieves a template by name.
func (r *Registry) Get(name string) (*Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	return t, ok
}

// List returns all registered templates, sorted by name.
func (r *Registry) List() []*Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of registered templates.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// ─────────────────────────────────────────────────────────────────────────────
// Rendering
// ─────────────────────────────────────────────────────────────────────────────

// Missing returns the required params absent from params.
func (t *Template) Missing(params map[string]string) []string {
	var missing []string
	for _, p := range t.Params {
		if p.Required {
			v, ok := params[p.Name]
			if !ok || strings.TrimSpace(v) == "" {
				missing = append(missing, p.Name)
			}
		}
	}
	return missing
}

// ResolvedParams returns params merged with defaults (params take precedence).
func (t *Template) ResolvedParams(provided map[string]string) map[string]string {
	out := make(map[string]string, len(t.Params))
	for _, p := range t.Params {
		if p.Default != "" {
			out[p.Name] = p.Default
		}
	}
	for k, v := range provided {
		out[k] = v
	}
	return out
}

// Render substitutes params and builds a validated card.
func (t *Template) Render(params map[string]string) (Card, error) {
	if missing := t.Missing(t.ResolvedParams(params)); len(missing) > 0 {
		return Card{}, fmt.Errorf("template '%s': missing params %s", t.Name, strings.Join(missing, ", "))
	}
	resolved := t.ResolvedParams(params)
	pairs := make([]string, 0, 2*len(resolved))
	for k, v := range resolved {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	sub := strings.NewReplacer(pairs...)

	c := Card{Theme: t.Theme, Size: t.Size}
	for i, tm := range t.Modules {
		m, err := buildModule(tm, sub)
		if err != nil {
			return Card{}, fmt.Errorf("template '%s' module %d: %w", t.Name, i, err)
		}
		c.Modules = append(c.Modules, m)
	}
	if err := c.Validate(); err != nil {
		return Card{}, fmt.Errorf("template '%s': %w", t.Name, err)
	}
	return c, nil
}

func buildModule(tm TemplateModule, sub *strings.Replacer) (Module, error) {
	switch tm.Type {
	case "header":
		return HeaderModule{Text: sub.Replace(tm.Text)}, nil
	case "section":
		return SectionModule{Text: sub.Replace(tm.Text)}, nil
	case "divider":
		return DividerModule{}, nil
	case "countdown":
		m := CountdownModule{Mode: CountdownMode(tm.Mode)}
		var err error
		if tm.Start != "" {
			if m.StartTime, err = parseInstant(sub.Replace(tm.Start)); err != nil {
				return nil, fmt.Errorf("start: %w", err)
			}
		}
		if m.EndTime, err = parseInstant(sub.Replace(tm.End)); err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownModule, tm.Type)
	}
}

func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return domain.FromMillis(ms), nil
	}
	return time.Parse(time.RFC3339, s)
}
