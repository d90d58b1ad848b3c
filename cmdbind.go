// Package cmdbind derives command-line interfaces from explicit parameter
// schemas and dispatches parsed input back into plain Go functions. It is a
// thin layer over github.com/urfave/cli/v3: the engine owns tokenization,
// grammar, and help/version rendering; cmdbind owns the declaration shape,
// the name→slot mapping, default substitution, coercion, and exit-code
// normalization.
//
//	app := cmdbind.New("filetool").Version("v1.0.0")
//	app.Command(&cmdbind.Command{
//		Name:  "copy",
//		Usage: "Copy a file",
//		Params: []*cmdbind.Param{
//			cmdbind.String("srcPath"),
//			cmdbind.String("dstPath").Default("."),
//			cmdbind.Bool("force").Option().Alias("f").Doc("overwrite the destination"),
//		},
//		Handler: func(inv *cmdbind.Invocation) error {
//			return copyFile(inv.String("srcPath"), inv.String("dstPath"), inv.Bool("force"))
//		},
//	})
//	os.Exit(app.Run(context.Background(), os.Args))
package cmdbind

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// Command declares one subcommand: a name (normalized through FlagToken, so
// "AddUser" surfaces as "add-user"), optional help text, the parameter
// schema, and the handler the dispatcher invokes. Params and Spec are the
// two ways to declare parameters; set exactly one.
type Command struct {
	Name        string
	Usage       string
	Description string
	Params      []*Param
	Spec        string
	Handler     Handler
}

// App assembles the root command handed to the parsing engine. Writer and
// ErrWriter default to stdout and stderr and may be replaced before Run.
type App struct {
	Writer    io.Writer
	ErrWriter io.Writer

	name        string
	usage       string
	version     string
	description string
	bindings    []*binding
	err         error
}

// New creates an App with the given program name.
func New(name string) *App {
	return &App{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		name:      name,
	}
}

// Usage sets the one-line description shown in root help.
func (a *App) Usage(s string) *App {
	a.usage = s
	return a
}

// Version sets the version string; the engine provides --version from it.
func (a *App) Version(v string) *App {
	a.version = v
	return a
}

// Description sets the long root help text.
func (a *App) Description(s string) *App {
	a.description = s
	return a
}

// Command registers a subcommand. Binding happens here, so configuration
// errors (bad schema, colliding names, unsupported handler) are caught at
// registration time; Run reports the first one instead of parsing.
func (a *App) Command(c *Command) *App {
	b, err := c.bind()
	if err != nil {
		if a.err == nil {
			a.err = commandError(c.Name, err)
		}
		return a
	}
	a.bindings = append(a.bindings, b)
	return a
}

// Run parses args (including the program name at index 0), dispatches the
// matched subcommand, and returns the process exit code. Handler failures
// are reported to ErrWriter and yield 1; a successful handler's status code
// passes through unchanged.
func (a *App) Run(ctx context.Context, args []string) int {
	if a.err != nil {
		reportError(a.ErrWriter, a.err)
		return 1
	}

	code := 0
	root := &cli.Command{
		Name:                   a.name,
		Usage:                  a.usage,
		Version:                a.version,
		Description:            a.description,
		UseShortOptionHandling: true,
		Writer:                 a.Writer,
		ErrWriter:              a.ErrWriter,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.DefaultShowRootCommandHelp(cmd)
		},
	}
	for _, b := range a.bindings {
		root.Commands = append(root.Commands, b.engineCommand(&code, a.ErrWriter))
	}

	if err := root.Run(ctx, args); err != nil {
		reportError(a.ErrWriter, err)
		return 1
	}
	return code
}

// Main runs against os.Args and exits the process with the resulting code.
func (a *App) Main() {
	os.Exit(a.Run(context.Background(), os.Args))
}

// engineCommand lowers a binding onto the engine's command type. The action
// closure writes the dispatch outcome into code rather than returning an
// error: failures are already reported and classified by the dispatcher, and
// must not surface to the engine as a second error path.
func (b *binding) engineCommand(code *int, errw io.Writer) *cli.Command {
	return &cli.Command{
		Name:        b.name,
		Usage:       b.cmd.Usage,
		Description: b.cmd.Description,
		ArgsUsage:   b.argsUsage,
		Flags:       b.flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			*code = b.dispatch(ctx, cmd, errw)
			return nil
		},
	}
}
