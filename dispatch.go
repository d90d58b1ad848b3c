package cmdbind

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
)

// Handler is the command callable. It must be one of:
//
//	func(*Invocation) error
//	func(*Invocation) (int, error)
//	func(context.Context, *Invocation) error
//	func(context.Context, *Invocation) (int, error)
//
// A nil error means success (exit code 0, or the returned status for the
// (int, error) forms). Anything else — error or panic — is reported by the
// dispatcher and becomes exit code 1; it never propagates past it.
type Handler any

type invokeFunc func(context.Context, *Invocation) (int, error)

// normalizeHandler folds the closed set of handler shapes into one callable
// form. Unknown shapes are a configuration error.
func normalizeHandler(h Handler) (invokeFunc, error) {
	switch fn := h.(type) {
	case func(*Invocation) error:
		return func(_ context.Context, inv *Invocation) (int, error) {
			return 0, fn(inv)
		}, nil
	case func(*Invocation) (int, error):
		return func(_ context.Context, inv *Invocation) (int, error) {
			return fn(inv)
		}, nil
	case func(context.Context, *Invocation) error:
		return func(ctx context.Context, inv *Invocation) (int, error) {
			return 0, fn(ctx, inv)
		}, nil
	case func(context.Context, *Invocation) (int, error):
		return fn, nil
	case nil:
		return nil, fmt.Errorf("command has no handler")
	default:
		return nil, fmt.Errorf("unsupported handler type %T", h)
	}
}

// Invocation carries the values of one command execution, one slot per
// declared parameter in declaration order. It is created fresh per dispatch
// and discarded afterwards.
type Invocation struct {
	b     *binding
	slots []Value
}

// Value returns the parameter's value and whether the name is declared.
// Parameters are addressed by their declaration identifier; the canonical
// flag token ("--dry-run") and positional label also resolve.
func (inv *Invocation) Value(name string) (Value, bool) {
	i, ok := inv.b.slots[name]
	if !ok {
		return Value{}, false
	}
	return inv.slots[i], true
}

// String returns the named string (or enum) value.
func (inv *Invocation) String(name string) string {
	v, _ := inv.Value(name)
	return v.str
}

// Bool returns the named boolean value.
func (inv *Invocation) Bool(name string) bool {
	v, _ := inv.Value(name)
	return v.b
}

// Int returns the named integer value.
func (inv *Invocation) Int(name string) int {
	v, _ := inv.Value(name)
	return v.i
}

// Float returns the named float value.
func (inv *Invocation) Float(name string) float64 {
	v, _ := inv.Value(name)
	return v.f
}

// Strings returns the collected tail of the named variadic parameter.
func (inv *Invocation) Strings(name string) []string {
	v, _ := inv.Value(name)
	return v.list
}

// Values returns every slot in the parameter declaration order.
func (inv *Invocation) Values() []Value {
	out := make([]Value, len(inv.slots))
	copy(out, inv.slots)
	return out
}

// dispatch consumes the parsed input for one execution: it assembles the
// slot array (positionals first, then options, declaration order within each
// group, defaults substituted on absence), invokes the handler, and
// normalizes the outcome into an exit code. Failures are written to errw and
// collapse to exit code 1; a panic inside the handler is recovered and
// treated the same way.
func (b *binding) dispatch(ctx context.Context, cmd *cli.Command, errw io.Writer) (code int) {
	inv := &Invocation{b: b, slots: make([]Value, len(b.params))}
	if err := b.fill(inv, cmd); err != nil {
		reportError(errw, err)
		return 1
	}
	defer func() {
		if r := recover(); r != nil {
			reportError(errw, fmt.Errorf("%s: %v", b.name, r))
			code = 1
		}
	}()
	status, err := b.invoke(ctx, inv)
	if err != nil {
		reportError(errw, err)
		return 1
	}
	return status
}

// fill resolves each declared name to its slot, coercing raw positional text
// to the declared kind and reading typed option values from the engine.
func (b *binding) fill(inv *Invocation, cmd *cli.Command) error {
	args := cmd.Args().Slice()

	next := 0
	for _, p := range b.positionals {
		slot := b.slots[p.name]
		if p.variadic {
			inv.slots[slot] = Value{kind: KindString, list: append([]string(nil), args[next:]...)}
			next = len(args)
			continue
		}
		if next < len(args) {
			v, err := coerce(p, args[next])
			if err != nil {
				return err
			}
			inv.slots[slot] = v
			next++
			continue
		}
		if !p.defSet {
			return fmt.Errorf("missing required argument <%s>", p.label())
		}
		inv.slots[slot] = p.defaultValue()
	}
	if next < len(args) {
		return fmt.Errorf("unexpected argument %q", args[next])
	}

	for i, p := range b.options {
		slot := b.slots[p.name]
		tok := b.optionNames[i]
		if !cmd.IsSet(tok) {
			if p.defSet {
				inv.slots[slot] = p.defaultValue()
			} else {
				// Defaultless bool option: absent means false.
				inv.slots[slot] = Value{kind: KindBool}
			}
			continue
		}
		switch p.kind {
		case KindBool:
			inv.slots[slot] = Value{kind: KindBool, b: cmd.Bool(tok)}
		case KindInt:
			inv.slots[slot] = Value{kind: KindInt, i: int(cmd.Int(tok))}
		case KindFloat:
			inv.slots[slot] = Value{kind: KindFloat, f: float64(cmd.Float(tok))}
		case KindEnum:
			s := cmd.String(tok)
			if !p.isChoice(s) {
				return fmt.Errorf("invalid value %q for --%s (one of: %s)",
					s, tok, strings.Join(p.choices, ", "))
			}
			inv.slots[slot] = Value{kind: KindEnum, str: s}
		default:
			inv.slots[slot] = Value{kind: KindString, str: cmd.String(tok)}
		}
	}
	return nil
}

// coerce converts raw positional text to the parameter's declared kind.
func coerce(p *Param, raw string) (Value, error) {
	switch p.kind {
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("argument <%s>: expected true or false, got %q", p.label(), raw)
		}
		return Value{kind: KindBool, b: v}, nil
	case KindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("argument <%s>: expected an integer, got %q", p.label(), raw)
		}
		return Value{kind: KindInt, i: v}, nil
	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("argument <%s>: expected a number, got %q", p.label(), raw)
		}
		return Value{kind: KindFloat, f: v}, nil
	case KindEnum:
		if !p.isChoice(raw) {
			return Value{}, fmt.Errorf("argument <%s>: invalid value %q (one of: %s)",
				p.label(), raw, strings.Join(p.choices, ", "))
		}
		return Value{kind: KindEnum, str: raw}, nil
	default:
		return Value{kind: KindString, str: raw}, nil
	}
}

func (p *Param) isChoice(s string) bool {
	for _, c := range p.choices {
		if c == s {
			return true
		}
	}
	return false
}
