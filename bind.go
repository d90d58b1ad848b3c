package cmdbind

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// binding is the frozen result of registering a Command: the declarations
// handed to the parsing engine plus the name→slot mapping consulted on every
// dispatch. It is built once and read-only afterwards.
type binding struct {
	cmd         *Command
	name        string
	params      []*Param
	positionals []*Param
	options     []*Param
	optionNames []string // canonical flag token per option, same order
	slots       map[string]int
	flags       []cli.Flag
	argsUsage   string
	invoke      invokeFunc
}

// bind inspects the command's parameter declarations and produces the engine
// command shape: one named-option declaration per option-marked parameter,
// one positional-argument declaration per plain parameter, and the slot
// mapping the dispatcher resolves names through. All configuration errors
// (nil handler, colliding canonical names, an option without a default, an
// enum default outside its choices, a required positional after an optional
// one, a misplaced variadic) are reported here, at registration time.
func (c *Command) bind() (*binding, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("command has no name")
	}
	invoke, err := normalizeHandler(c.Handler)
	if err != nil {
		return nil, err
	}

	params := c.Params
	if c.Spec != "" {
		if len(params) > 0 {
			return nil, fmt.Errorf("both Spec and Params set; declare parameters one way")
		}
		params, err = ParseUsage(c.Spec)
		if err != nil {
			return nil, fmt.Errorf("parsing Spec: %w", err)
		}
	}

	b := &binding{
		cmd:    c,
		name:   FlagToken(c.Name),
		params: params,
		slots:  make(map[string]int),
		invoke: invoke,
	}

	optional := false
	for i, p := range params {
		if strings.TrimSpace(p.name) == "" {
			return nil, fmt.Errorf("parameter %d has no name", i)
		}
		if err := b.claim(p.name, i); err != nil {
			return nil, err
		}
		if err := p.validate(); err != nil {
			return nil, err
		}

		if p.option {
			tok := FlagToken(p.name)
			if err := b.claim("--"+tok, i); err != nil {
				return nil, err
			}
			for _, a := range p.aliases {
				if err := b.claim("--"+a, i); err != nil {
					return nil, err
				}
			}
			b.options = append(b.options, p)
			b.optionNames = append(b.optionNames, tok)
			b.flags = append(b.flags, engineFlag(p, tok))
			continue
		}

		if p.variadic && i != len(params)-1 {
			return nil, fmt.Errorf("variadic parameter %s must be last", p.name)
		}
		if p.defSet {
			optional = true
		} else if optional && !p.variadic {
			return nil, fmt.Errorf("required argument %s follows an optional one", p.name)
		}
		if err := b.claim(p.label(), i); err != nil {
			return nil, err
		}
		b.positionals = append(b.positionals, p)
	}

	b.argsUsage = argsUsage(b.positionals)
	return b, nil
}

// claim records a canonical name → slot entry, rejecting collisions.
func (b *binding) claim(name string, slot int) error {
	if prev, ok := b.slots[name]; ok && prev != slot {
		return fmt.Errorf("parameters %s and %s collide on %q",
			b.params[prev].name, b.params[slot].name, name)
	}
	b.slots[name] = slot
	return nil
}

// validate checks the per-parameter contracts that do not depend on the
// surrounding command.
func (p *Param) validate() error {
	if p.defSet {
		if err := p.checkDefaultType(); err != nil {
			return err
		}
	}
	if p.kind == KindEnum {
		if len(p.choices) == 0 {
			return fmt.Errorf("enum %s has no choices", p.name)
		}
		seen := make(map[string]bool, len(p.choices))
		for _, c := range p.choices {
			if seen[c] {
				return fmt.Errorf("enum %s repeats choice %q", p.name, c)
			}
			seen[c] = true
		}
		if p.defSet {
			if d, _ := p.defRaw.(string); !seen[d] {
				return fmt.Errorf("enum %s default %q is not a choice", p.name, d)
			}
		}
	}
	if p.option {
		if p.variadic {
			return fmt.Errorf("option %s cannot be variadic", p.name)
		}
		// A bool option with no default is a pure presence flag; every
		// other option must say what omission means.
		if !p.defSet && p.kind != KindBool {
			return fmt.Errorf("option %s must declare a default", p.name)
		}
		return nil
	}
	if len(p.aliases) > 0 {
		return fmt.Errorf("positional %s cannot have aliases", p.name)
	}
	if p.variadic {
		if p.kind != KindString {
			return fmt.Errorf("variadic parameter %s must be a string", p.name)
		}
		if p.defSet {
			return fmt.Errorf("variadic parameter %s cannot have a default", p.name)
		}
	}
	return nil
}

// checkDefaultType rejects defaults whose Go type disagrees with the
// declared kind.
func (p *Param) checkDefaultType() error {
	ok := false
	switch p.kind {
	case KindString, KindEnum:
		_, ok = p.defRaw.(string)
	case KindBool:
		_, ok = p.defRaw.(bool)
	case KindInt:
		_, ok = p.defRaw.(int)
	case KindFloat:
		_, ok = p.defRaw.(float64)
	}
	if !ok {
		return fmt.Errorf("parameter %s: default %v (%T) does not match kind %s",
			p.name, p.defRaw, p.defRaw, p.kind)
	}
	return nil
}

// engineFlag lowers an option parameter onto the parsing engine's flag type
// for its kind. Defaults are applied by the dispatcher, not the engine, so
// they are rendered into the help text here.
func engineFlag(p *Param, tok string) cli.Flag {
	usage := p.doc
	if p.pretty != "" {
		usage = strings.TrimSpace(usage + " `" + p.pretty + "`")
	}
	if p.kind == KindEnum {
		usage = strings.TrimSpace(usage + " (one of: " + strings.Join(p.choices, ", ") + ")")
	}
	if p.defSet {
		usage = strings.TrimSpace(usage + fmt.Sprintf(" (default: %v)", p.defRaw))
	}
	switch p.kind {
	case KindBool:
		return &cli.BoolFlag{Name: tok, Aliases: p.aliases, Usage: usage}
	case KindInt:
		return &cli.IntFlag{Name: tok, Aliases: p.aliases, Usage: usage}
	case KindFloat:
		return &cli.FloatFlag{Name: tok, Aliases: p.aliases, Usage: usage}
	default:
		return &cli.StringFlag{Name: tok, Aliases: p.aliases, Usage: usage}
	}
}

// argsUsage renders the positional plan the way the engine expects it:
// "<Src Path> [Level] [Rest...]".
func argsUsage(positionals []*Param) string {
	var parts []string
	for _, p := range positionals {
		switch {
		case p.variadic:
			parts = append(parts, "["+p.label()+"...]")
		case p.defSet:
			parts = append(parts, "["+p.label()+"]")
		default:
			parts = append(parts, "<"+p.label()+">")
		}
	}
	return strings.Join(parts, " ")
}
