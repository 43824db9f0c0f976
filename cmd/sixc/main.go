package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/goforj/godump"

	"sixc/pkg/cli"
	"sixc/pkg/compiler"
	"sixc/pkg/config"
)

func main() {
	app := cli.NewApp("sixc")
	app.Synopsis = "[options] [file]"
	app.Description = "A compiler for a small C-like language, targeting 6502 assembly in DASM syntax. Reads from a file argument or from stdin."
	app.Authors = []string{"sixc contributors"}
	app.Repository = "<https://github.com/sixc/sixc>"

	var (
		outFile   string
		target    string
		verbose   bool
		dumpAST   bool
		fingerprt bool
		flags     []string
	)

	fs := app.FlagSet
	fs.String(&outFile, "output", "o", "-", "Place the generated assembly into <file> (\"-\" for stdout).", "file")
	fs.String(&target, "target", "t", "py65mon", "Set the I/O target (\"generic\" or \"py65mon\").", "target")
	fs.Bool(&verbose, "verbose", "v", false, "Narrate each pipeline stage as it runs.")
	fs.Bool(&dumpAST, "dump-ast", "d", false, "Dump the parsed, resolved AST and exit without generating code.")
	fs.Bool(&fingerprt, "fingerprint", "", false, "Print the deterministic fingerprint of the generated assembly.")
	fs.List(&flags, "flag", "F", nil, "Toggle a feature or warning, e.g. -F Wno-overflow.", "flag")

	cfg := config.NewConfig()

	app.Action = func(args []string) error {
		if err := cfg.ProcessFlags(flags); err != nil {
			fmt.Fprintln(os.Stderr, "sixc:", err)
			return err
		}
		cfg.SetTarget(target)

		source, err := readSource(args)
		if err != nil {
			return err
		}

		if verbose {
			fmt.Fprintln(os.Stderr, "sixc: lexing, parsing and resolving source...")
		}

		result, err := compiler.Compile(source, cfg, target)
		if err != nil {
			fmt.Fprint(os.Stderr, err.Error())
			os.Exit(1)
		}

		for _, w := range result.Warnings {
			fmt.Fprintln(os.Stderr, "sixc: "+w.String())
		}

		if dumpAST {
			godump.Dump(result.Program)
			return nil
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "sixc: %s of 234 zero-page slots used\n",
				humanize.Comma(int64(len(result.Symbols))))
			fmt.Fprintf(os.Stderr, "sixc: generated %s of assembly for target %q\n",
				humanize.Bytes(uint64(len(result.Assembly))), target)
		}

		if fingerprt {
			fmt.Fprintf(os.Stderr, "sixc: fingerprint %016x\n", result.Fingerprint)
		}

		return writeOutput(outFile, result.Assembly)
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func readSource(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("could not read from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("could not read file %q: %w", args[0], err)
	}
	return string(data), nil
}

func writeOutput(path, assembly string) error {
	if path == "-" {
		_, err := fmt.Print(assembly)
		return err
	}
	return os.WriteFile(path, []byte(assembly), 0644)
}
