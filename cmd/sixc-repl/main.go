// Command sixc-repl is an interactive shell around the compiler: each
// line is accumulated into a pending program, which can be compiled and
// inspected without round-tripping through a file on disk.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/prefixtree/v2"

	"sixc/pkg/compiler"
	"sixc/pkg/config"
)

// settingKind distinguishes which of Config's two registries a resolved
// setting name belongs to.
type settingKind int

const (
	settingFeature settingKind = iota
	settingWarning
)

type setting struct {
	kind    settingKind
	feature config.Feature
	warning config.Warning
}

// buildSettings indexes every feature and warning name behind a single
// prefix tree, mirroring how the go6502 debugger resolves `.set`/`.get`
// arguments against its settings struct.
func buildSettings(cfg *config.Config) *prefixtree.Tree[*setting] {
	tree := prefixtree.New[*setting]()
	for name, ft := range cfg.FeatureMap {
		tree.Add(name, &setting{kind: settingFeature, feature: ft})
	}
	for name, wt := range cfg.WarningMap {
		tree.Add(name, &setting{kind: settingWarning, warning: wt})
	}
	return tree
}

type repl struct {
	cfg      *config.Config
	settings *prefixtree.Tree[*setting]
	target   string
	lines    []string
	input    *bufio.Scanner
	output   *bufio.Writer
	lastErr  error
}

var commands *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "sixc"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "run",
		Brief:       "Compile and print the accumulated program",
		Description: "Compile every line entered so far and print the generated assembly.",
		Usage:       "run",
		Data:        (*repl).cmdRun,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "fingerprint",
		Brief:       "Print the fingerprint of the compiled program",
		Description: "Compile the accumulated program and print its deterministic fingerprint.",
		Usage:       "fingerprint",
		Data:        (*repl).cmdFingerprint,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "target",
		Brief:       "Show or change the I/O target",
		Description: "With no argument, show the current target. With an argument, set it (\"generic\" or \"py65mon\").",
		Usage:       "target [<name>]",
		Data:        (*repl).cmdTarget,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "reset",
		Brief:       "Clear the accumulated program",
		Description: "Discard every line entered so far.",
		Usage:       "reset",
		Data:        (*repl).cmdReset,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "set",
		Brief:       "Enable or disable a feature or warning",
		Description: "Set <name> (or any unambiguous prefix of it) to \"on\" or \"off\". <name> resolves against both the feature and warning registries.",
		Usage:       "set <name> <on|off>",
		Data:        (*repl).cmdSet,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "get",
		Brief:       "Show feature and warning settings",
		Description: "With no argument, list every feature and warning. With a name (or prefix), show just that one.",
		Usage:       "get [<name>]",
		Data:        (*repl).cmdGet,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Exit the REPL",
		Description: "Exit the REPL.",
		Usage:       "quit",
		Data:        (*repl).cmdQuit,
	})
	commands = root
}

func main() {
	cfg := config.NewConfig()
	r := &repl{
		cfg:      cfg,
		settings: buildSettings(cfg),
		target:   "py65mon",
		input:    bufio.NewScanner(os.Stdin),
		output:   bufio.NewWriter(os.Stdout),
	}
	r.run()
}

func (r *repl) run() {
	r.println("sixc interactive shell. Type a statement, or a '.'-prefixed command (e.g. '.run', '.quit').")
	for {
		r.print("sixc> ")
		r.flush()

		if !r.input.Scan() {
			break
		}
		line := strings.TrimSpace(r.input.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			r.dispatch(strings.TrimPrefix(line, "."))
			continue
		}

		r.lines = append(r.lines, line)
	}
	r.println()
}

func (r *repl) dispatch(line string) {
	n, args, err := commands.Lookup(line)
	switch {
	case err == cmd.ErrNotFound:
		r.println("Command not found.")
		return
	case err == cmd.ErrAmbiguous:
		r.println("Command is ambiguous.")
		return
	case err != nil:
		r.printf("error: %v\n", err)
		return
	}
	c, ok := n.(*cmd.Command)
	if !ok {
		return
	}
	handler := c.Data.(func(*repl, []string) error)
	if err := handler(r, args); err != nil {
		r.printf("error: %v\n", err)
	}
}

func (r *repl) cmdRun(args []string) error {
	source := strings.Join(r.lines, "\n")
	result, err := compiler.Compile(source, r.cfg, r.target)
	if err != nil {
		r.print(err.Error())
		return nil
	}
	for _, w := range result.Warnings {
		r.println(w.String())
	}
	r.print(result.Assembly)
	return nil
}

func (r *repl) cmdFingerprint(args []string) error {
	source := strings.Join(r.lines, "\n")
	result, err := compiler.Compile(source, r.cfg, r.target)
	if err != nil {
		r.print(err.Error())
		return nil
	}
	r.printf("%016x\n", result.Fingerprint)
	return nil
}

func (r *repl) cmdTarget(args []string) error {
	if len(args) == 0 {
		r.printf("target: %s\n", r.target)
		return nil
	}
	r.target = args[0]
	r.cfg.SetTarget(r.target)
	return nil
}

func (r *repl) cmdReset(args []string) error {
	r.lines = nil
	r.println("program cleared")
	return nil
}

func (r *repl) cmdSet(args []string) error {
	if len(args) != 2 {
		r.println("usage: set <name> <on|off>")
		return nil
	}
	s, err := r.settings.FindValue(strings.ToLower(args[0]))
	if err != nil {
		r.printf("unknown setting %q: %v\n", args[0], err)
		return nil
	}
	enabled, err := parseOnOff(args[1])
	if err != nil {
		r.printf("%v\n", err)
		return nil
	}
	switch s.kind {
	case settingFeature:
		if err := r.cfg.SetFeature(s.feature, enabled); err != nil {
			r.printf("error: %v\n", err)
		}
	case settingWarning:
		r.cfg.SetWarning(s.warning, enabled)
	}
	return nil
}

func (r *repl) cmdGet(args []string) error {
	if len(args) == 0 {
		for _, info := range r.cfg.Features {
			r.printf("%-20s %-3v %s\n", info.Name, info.Enabled, info.Description)
		}
		for _, info := range r.cfg.Warnings {
			r.printf("%-20s %-3v %s\n", info.Name, info.Enabled, info.Description)
		}
		return nil
	}
	s, err := r.settings.FindValue(strings.ToLower(args[0]))
	if err != nil {
		r.printf("unknown setting %q: %v\n", args[0], err)
		return nil
	}
	var info config.Info
	switch s.kind {
	case settingFeature:
		info = r.cfg.Features[s.feature]
	case settingWarning:
		info = r.cfg.Warnings[s.warning]
	}
	r.printf("%-20s %-3v %s\n", info.Name, info.Enabled, info.Description)
	return nil
}

// parseOnOff accepts "on"/"off", and also true/false, 1/0 and yes/no,
// case-insensitively.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected \"on\" or \"off\", got %q", s)
	}
}

func (r *repl) cmdQuit(args []string) error {
	os.Exit(0)
	return nil
}

func (r *repl) print(args ...interface{})            { fmt.Fprint(r.output, args...) }
func (r *repl) printf(format string, a ...interface{}) { fmt.Fprintf(r.output, format, a...); r.flush() }
func (r *repl) println(args ...interface{})           { fmt.Fprintln(r.output, args...); r.flush() }
func (r *repl) flush()                                { r.output.Flush() }
