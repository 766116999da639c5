package validate

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rotisserie/eris"

	"github.com/argus-labs/godesc/pkg/codec"
	"github.com/argus-labs/godesc/pkg/descriptor"
)

// Rule is a project specific check written in the expr language and evaluated once per entry.
// Please refer to https://expr-lang.org/docs/language-definition for the syntax. Each entry is
// exposed as:
//
//	file        descriptor file name
//	id          entry id
//	kind        "component" or "embedded"
//	type_name   embedded component type, "" for components
//	path        component resource path, "" for embedded components
//	position    {x, y, z}
//	rotation    {x, y, z, w}
//	properties  property id to decoded value (vectors as {x, y, z[, w]})
//	payload     decoded embedded data, e.g. payload.default_animation for sprites
type Rule struct {
	Name     string   `json:"name" mapstructure:"name"`
	When     string   `json:"when,omitempty" mapstructure:"when"`
	Expr     string   `json:"expr" mapstructure:"expr"`
	Message  string   `json:"message,omitempty" mapstructure:"message"`
	Severity Severity `json:"severity,omitempty" mapstructure:"severity"`
}

type compiledRule struct {
	Rule
	when *vm.Program
	expr *vm.Program
}

func compileRule(r Rule) (compiledRule, error) {
	if r.Name == "" {
		return compiledRule{}, eris.New("rule name cannot be empty")
	}
	if r.Expr == "" {
		return compiledRule{}, eris.Errorf("rule %q has no expression", r.Name)
	}
	if r.Severity == "" {
		r.Severity = SeverityError
	}
	if !r.Severity.IsValid() {
		return compiledRule{}, eris.Errorf("rule %q has invalid severity %q (must be 'error' or 'warning')",
			r.Name, r.Severity)
	}

	c := compiledRule{Rule: r}
	var err error
	// The env is only known per entry, so the compiler cannot check field types. AsBool still
	// rejects expressions that are obviously not predicates.
	if c.expr, err = expr.Compile(r.Expr, expr.AsBool()); err != nil {
		return compiledRule{}, eris.Wrapf(err, "failed to compile rule %q", r.Name)
	}
	if r.When != "" {
		if c.when, err = expr.Compile(r.When, expr.AsBool()); err != nil {
			return compiledRule{}, eris.Wrapf(err, "failed to compile when clause of rule %q", r.Name)
		}
	}
	return c, nil
}

// eval runs the rule against env. It returns whether the entry passes.
func (c *compiledRule) eval(env map[string]any) (bool, error) {
	if c.when != nil {
		ok, err := runBool(c.when, env)
		if err != nil {
			return false, eris.Wrap(err, "when")
		}
		if !ok {
			return true, nil
		}
	}
	return runBool(c.expr, env)
}

func runBool(program *vm.Program, env map[string]any) (bool, error) {
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, eris.Errorf("expression returned %T, not bool", out)
	}
	return b, nil
}

func (c *compiledRule) message(entry string) string {
	if c.Message != "" {
		return c.Message
	}
	return fmt.Sprintf("entry %q fails rule %q", entry, c.Name)
}

// entryEnv builds the expression environment for one entry.
func entryEnv(file string, e descriptor.Entry) map[string]any {
	env := map[string]any{
		"file":       file,
		"id":         e.ID,
		"kind":       string(e.Kind),
		"type_name":  "",
		"path":       "",
		"position":   map[string]any{"x": e.Position.X, "y": e.Position.Y, "z": e.Position.Z},
		"rotation":   map[string]any{"x": e.Rotation.X, "y": e.Rotation.Y, "z": e.Rotation.Z, "w": e.Rotation.W},
		"scale":      map[string]any{"x": e.Scale.X, "y": e.Scale.Y, "z": e.Scale.Z},
		"properties": map[string]any{},
		"payload":    map[string]any{},
	}

	switch e.Kind {
	case descriptor.KindComponent:
		env["path"] = e.Component.Component
		props := make(map[string]any, len(e.Component.Properties))
		for _, p := range e.Component.Properties {
			v, err := p.Decode()
			if err != nil {
				props[p.ID] = p.Value
				continue
			}
			props[p.ID] = toEnvValue(v)
		}
		env["properties"] = props
	case descriptor.KindEmbedded:
		env["type_name"] = e.Embedded.Type
		if e.Embedded.Payload != nil {
			env["payload"] = toEnvValue(e.Embedded.Payload)
		}
	}
	return env
}

// toEnvValue turns structs into plain maps so expressions can use the JSON field names.
func toEnvValue(v any) any {
	switch v.(type) {
	case float64, string, bool:
		return v
	}
	bz, err := codec.Encode(v)
	if err != nil {
		return nil
	}
	m, err := codec.Decode[map[string]any](bz)
	if err != nil {
		return nil
	}
	return m
}
