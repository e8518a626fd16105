package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/agentx-labs/addonctl/internal/deferred"
)

// ParamType is the value type of a parameter.
type ParamType int

const (
	String ParamType = iota
	Bool
)

// Param describes one positional parameter.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	// Default is used when the parameter is omitted. A nil Default makes the
	// parameter required.
	Default any
}

// Handler runs a command with bound arguments.
type Handler func(args Args) deferred.Outcome

// Spec defines a command. Name may contain spaces ("addon list").
type Spec struct {
	Name        string
	Description string
	Params      []Param
	Exec        Handler
}

// Args holds bound parameter values by name.
type Args map[string]any

// String returns the string argument name, or "" if absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the bool argument name, or false if absent.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// ErrUnknownCommand is returned by Dispatch when no command matches the input.
var ErrUnknownCommand = errors.New("unknown command")

// Registry maps command names to specs.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds spec. Parent commands without a handler may be registered
// for their description only.
func (r *Registry) Register(spec Spec) error {
	name := strings.Join(strings.Fields(spec.Name), " ")
	if name == "" {
		return fmt.Errorf("registering command: empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	spec.Name = name
	r.specs[name] = spec
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[name]
	return spec, ok
}

// Specs returns all registered specs sorted by name.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch finds the longest registered command name that prefixes words,
// binds the remaining words to its parameters and runs it.
func (r *Registry) Dispatch(words []string) (deferred.Outcome, error) {
	spec, rest, ok := r.resolve(words)
	if !ok {
		return deferred.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownCommand, strings.Join(words, " "))
	}
	if spec.Exec == nil {
		return deferred.Outcome{}, fmt.Errorf("%q needs a subcommand", spec.Name)
	}
	args, err := Bind(spec, rest)
	if err != nil {
		return deferred.Outcome{}, err
	}
	return spec.Exec(args), nil
}

func (r *Registry) resolve(words []string) (Spec, []string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for n := len(words); n > 0; n-- {
		if spec, ok := r.specs[strings.Join(words[:n], " ")]; ok {
			return spec, words[n:], true
		}
	}
	return Spec{}, nil, false
}

// Bind assigns values to spec's parameters in order, applying defaults.
func Bind(spec Spec, values []string) (Args, error) {
	if len(values) > len(spec.Params) {
		return nil, fmt.Errorf("%s: too many arguments (want at most %d, got %d)", spec.Name, len(spec.Params), len(values))
	}
	args := make(Args, len(spec.Params))
	for i, p := range spec.Params {
		if i >= len(values) {
			if p.Default == nil {
				return nil, fmt.Errorf("%s: missing required argument <%s>", spec.Name, p.Name)
			}
			args[p.Name] = p.Default
			continue
		}
		v, err := convert(p, values[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		args[p.Name] = v
	}
	return args, nil
}

func convert(p Param, raw string) (any, error) {
	switch p.Type {
	case Bool:
		switch strings.ToLower(raw) {
		case "yes", "y", "on":
			return true, nil
		case "no", "n", "off":
			return false, nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("argument <%s>: %q is not a boolean", p.Name, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}
