package cmdbind

import "strings"

// Kind tags the value type a parameter accepts. The set is closed: commands
// are declared against these kinds instead of arbitrary Go types, so binding
// and dispatch never need reflection.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Value is a tagged union holding one parsed parameter value. The zero Value
// is an empty string value.
type Value struct {
	kind Kind
	str  string
	b    bool
	i    int
	f    float64
	list []string
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload. Enum values are strings too.
func (v Value) Str() string { return v.str }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload.
func (v Value) Int() int { return v.i }

// Float returns the float payload.
func (v Value) Float() float64 { return v.f }

// List returns the collected tail of a variadic positional.
func (v Value) List() []string { return v.list }

// Param declares one argument or option of a command: an identifier, a value
// kind, and the metadata the binder turns into an engine declaration.
// Parameters are built fluently:
//
//	cmdbind.String("srcPath").Doc("file to copy")
//	cmdbind.Int("level").Option().Default(3).Alias("l")
//
// and are immutable once the owning command has been registered.
type Param struct {
	name     string
	kind     Kind
	option   bool
	variadic bool
	defSet   bool
	defRaw   any
	doc      string
	pretty   string
	aliases  []string
	choices  []string
}

// String declares a string-valued parameter.
func String(name string) *Param { return &Param{name: name, kind: KindString} }

// Bool declares a boolean parameter. As an option with no default it binds
// as a pure presence flag.
func Bool(name string) *Param { return &Param{name: name, kind: KindBool} }

// Int declares an integer parameter.
func Int(name string) *Param { return &Param{name: name, kind: KindInt} }

// Float declares a float parameter.
func Float(name string) *Param { return &Param{name: name, kind: KindFloat} }

// Enum declares a string parameter restricted to the given choices.
func Enum(name string, choices ...string) *Param {
	return &Param{name: name, kind: KindEnum, choices: choices}
}

// Option marks the parameter as a named option (--flag) instead of a
// positional argument. Every option except a defaultless Bool must carry a
// default; the binder enforces this at registration time.
func (p *Param) Option() *Param {
	p.option = true
	return p
}

// Default sets the value used when the input omits this parameter. The
// value's Go type must match the parameter's kind (string for enums); a
// mismatch is reported when the command is registered.
func (p *Param) Default(v any) *Param {
	p.defSet = true
	p.defRaw = v
	return p
}

// Alias adds alternate names for an option. Leading dashes are stripped:
// the parsing engine takes bare tokens and prefixes them itself.
func (p *Param) Alias(names ...string) *Param {
	for _, n := range names {
		p.aliases = append(p.aliases, strings.TrimLeft(n, "-"))
	}
	return p
}

// Doc attaches help text.
func (p *Param) Doc(text string) *Param {
	p.doc = text
	return p
}

// Pretty overrides the help-rendered name. It has no effect on the canonical
// name used for binding.
func (p *Param) Pretty(name string) *Param {
	p.pretty = name
	return p
}

// Variadic marks a string positional as collecting every remaining argument.
// It must be the last parameter of its command.
func (p *Param) Variadic() *Param {
	p.variadic = true
	return p
}

// label returns the help-rendered name for a positional parameter.
func (p *Param) label() string {
	if p.pretty != "" {
		return p.pretty
	}
	return DisplayLabel(p.name)
}

// defaultValue converts the raw default into a typed Value. Kind mismatches
// surface as binding errors, not here.
func (p *Param) defaultValue() Value {
	switch v := p.defRaw.(type) {
	case string:
		return Value{kind: p.kind, str: v}
	case bool:
		return Value{kind: KindBool, b: v}
	case int:
		return Value{kind: KindInt, i: v}
	case float64:
		return Value{kind: KindFloat, f: v}
	}
	return Value{kind: p.kind}
}
