package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sorrel-lang/sorrel/config"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/evaluator"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/parser"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/repl"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/sorrel"
)

// Version is set at compile time via -ldflags
var Version = "0.3.0"

var (
	// Display flags
	helpFlag        = flag.Bool("h", false, "Show help message")
	helpLongFlag    = flag.Bool("help", false, "Show help message")
	versionFlag     = flag.Bool("V", false, "Show version information")
	versionLongFlag = flag.Bool("version", false, "Show version information")

	// Evaluation flags
	evalFlag     = flag.String("e", "", "Evaluate code string")
	evalLongFlag = flag.String("eval", "", "Evaluate code string")
	checkFlag    = flag.Bool("check", false, "Check syntax without executing")

	// Runtime flags
	configFlag   = flag.String("config", "", "Path to config file (default: .sorrel.yaml if present)")
	localeFlag   = flag.String("locale", "", "Locale for number formatting (overrides config)")
	maxDepthFlag = flag.Int("max-depth", 0, "Evaluation depth limit (overrides config)")
)

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag || *helpLongFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag || *versionLongFlag {
		fmt.Printf("sorrel version %s\n", Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *localeFlag != "" {
		cfg.Runtime.Locale = *localeFlag
	}
	if *maxDepthFlag > 0 {
		cfg.Runtime.MaxDepth = *maxDepthFlag
	}

	evalCode := *evalFlag
	if evalCode == "" {
		evalCode = *evalLongFlag
	}

	switch {
	case evalCode != "":
		executeInline(evalCode, cfg)
	case *checkFlag:
		files := flag.Args()
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --check requires at least one file")
			os.Exit(2)
		}
		os.Exit(checkFiles(files))
	case len(flag.Args()) > 0:
		executeFile(flag.Args()[0], cfg)
	default:
		repl.Start(os.Stdin, os.Stdout, Version, repl.Options{
			Prompt:      cfg.Repl.Prompt,
			HistoryFile: cfg.HistoryPath(),
			MaxDepth:    cfg.Runtime.MaxDepth,
			Locale:      cfg.Runtime.Locale,
		})
	}
}

func printHelp() {
	fmt.Printf(`sorrel - Sorrel language interpreter version %s

Usage:
  sorrel [options] [file]
  sorrel -e "code"
  sorrel --check <file>...

Display Options:
  -h, --help            Show this help message
  -V, --version         Show version information

Evaluation Options:
  -e, --eval <code>     Evaluate code string and print the result
  --check               Check syntax without executing (can specify multiple files)

Runtime Options:
  --config <path>       Config file (default: .sorrel.yaml if present)
  --locale <tag>        Locale for number formatting, e.g. de-DE
  --max-depth <n>       Evaluation depth limit

Examples:
  sorrel                         Start interactive REPL
  sorrel script.sl               Execute a Sorrel script
  sorrel -e "1 + 2"              Evaluate inline code (outputs: 3)
  sorrel -e "'ab' << 'c'"        Evaluate inline code (outputs: "abc")
  sorrel --check script.sl       Check syntax without executing
  sorrel --locale de-DE -e "1234567.format"
`, Version)
}

// newEnv builds an environment from the loaded config
func newEnv(cfg *config.Config) *evaluator.Environment {
	env := evaluator.NewEnvironment()
	if cfg.Runtime.MaxDepth > 0 {
		env.MaxDepth = cfg.Runtime.MaxDepth
	}
	if cfg.Runtime.Locale != "" {
		env.Locale = cfg.Runtime.Locale
	}
	return env
}

// executeInline evaluates inline code provided via -e flag
func executeInline(code string, cfg *config.Config) {
	env := newEnv(cfg)
	env.Filename = "<eval>"

	result, err := sorrel.ExecuteIn(code, env)
	if err != nil {
		printError("<eval>", code, err)
		os.Exit(1)
	}

	if result.Type() != evaluator.NIL_OBJ {
		fmt.Println(sorrel.Inspect(result))
	}
}

// checkFiles checks the syntax of one or more files without executing them
func checkFiles(files []string) int {
	hasErrors := false

	for _, filename := range files {
		content, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
			return 2
		}

		l := lexer.NewWithFilename(string(content), filename)
		p := parser.New(l)
		_ = p.ParseProgram()

		if errs := p.StructuredErrors(); len(errs) != 0 {
			for _, perr := range errs {
				printError(filename, string(content), perr.WithFile(filename))
			}
			hasErrors = true
		}
	}

	if hasErrors {
		return 1
	}
	return 0
}

// executeFile reads and executes a Sorrel source file
func executeFile(filename string, cfg *config.Config) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file '%s': %v\n", filename, err)
		os.Exit(1)
	}

	env := newEnv(cfg)
	env.Filename = filename

	result, runErr := sorrel.ExecuteIn(string(content), env)
	if runErr != nil {
		printError(filename, string(content), runErr)
		os.Exit(1)
	}

	if result.Type() != evaluator.NIL_OBJ {
		fmt.Println(result.Inspect())
	}
}

// printError prints a structured error with source context
func printError(filename, source string, err error) {
	serr, ok := err.(*errors.SorrelError)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(os.Stderr, serr.PrettyString())

	if serr.Line > 0 {
		printSourceContext(strings.Split(source, "\n"), serr.Line, serr.Column)
	}
}

// printSourceContext prints the source line and error pointer
func printSourceContext(lines []string, lineNum, colNum int) {
	if lineNum <= 0 || lineNum > len(lines) {
		return
	}

	sourceLine := lines[lineNum-1]

	trimCount := 0
	for i := 0; i < len(sourceLine); i++ {
		if sourceLine[i] == ' ' || sourceLine[i] == '\t' {
			if sourceLine[i] == '\t' {
				trimCount += 8
			} else {
				trimCount++
			}
		} else {
			break
		}
	}

	trimmedLine := strings.TrimLeft(sourceLine, " \t")
	fmt.Fprintf(os.Stderr, "    %s\n", trimmedLine)

	if colNum > 0 {
		// Visual column accounts for tabs (8 spaces each) up to the error position
		visualCol := 0
		for i := 0; i < colNum-1 && i < len(sourceLine); i++ {
			if sourceLine[i] == '\t' {
				visualCol += 8
			} else {
				visualCol++
			}
		}

		adjustedCol := max(visualCol-trimCount, 0)

		pointer := strings.Repeat(" ", adjustedCol) + "^"
		fmt.Fprintf(os.Stderr, "    %s\n", pointer)
	}
}
