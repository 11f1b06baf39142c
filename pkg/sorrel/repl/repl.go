package repl

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/evaluator"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/parser"
)

const PROMPT = ">> "
const CONTINUATION_PROMPT = ".. "

const SORREL_LOGO = `
█▀ █▀█ █▀█ █▀█ █▀▀ █░░
▄█ █▄█ █▀▄ █▀▄ ██▄ █▄▄ `

// Options configures a REPL session. Zero values fall back to defaults.
type Options struct {
	Prompt      string
	HistoryFile string
	MaxDepth    int
	Locale      string
}

// completionWords collects keywords plus every method name across the
// registered types, for tab completion.
func completionWords() []string {
	seen := map[string]bool{}
	words := append([]string{}, errors.SorrelKeywords...)
	for _, w := range words {
		seen[w] = true
	}
	for _, typeName := range []string{"string", "integer", "boolean", "nil"} {
		registry := evaluator.GetRegistryForType(typeName)
		if registry == nil {
			continue
		}
		for _, name := range registry.Names() {
			if !seen[name] {
				seen[name] = true
				words = append(words, name)
			}
		}
	}
	sort.Strings(words)
	return words
}

// Start starts the REPL with line editing, history, and tab completion
func Start(in io.Reader, out io.Writer, version string, opts Options) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	words := completionWords()
	line.SetCompleter(func(line string) []string {
		return filterCompletions(line, words)
	})

	historyFile := opts.HistoryFile
	if historyFile == "" {
		historyFile = os.TempDir() + "/.sorrel_history"
	}
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	env := evaluator.NewEnvironment()
	if opts.MaxDepth > 0 {
		env.MaxDepth = opts.MaxDepth
	}
	if opts.Locale != "" {
		env.Locale = opts.Locale
	}

	basePrompt := opts.Prompt
	if basePrompt == "" {
		basePrompt = PROMPT
	}

	fmt.Fprintf(out, "%s", SORREL_LOGO)
	fmt.Fprintln(out, "v", version)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(out, "Type ':help' for REPL commands")
	fmt.Fprintln(out, "")

	var inputBuffer strings.Builder

	for {
		currentPrompt := basePrompt
		if inputBuffer.Len() > 0 {
			currentPrompt = CONTINUATION_PROMPT
		}
		input, err := line.Prompt(currentPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				if inputBuffer.Len() > 0 {
					fmt.Fprintln(out, "^C (cleared)")
				} else {
					fmt.Fprintln(out, "^C")
				}
				inputBuffer.Reset()
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if inputBuffer.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		if inputBuffer.Len() == 0 && strings.HasPrefix(trimmed, ":") {
			handleReplCommand(trimmed, env, out)
			continue
		}

		if inputBuffer.Len() == 0 && trimmed == "" {
			continue
		}

		if inputBuffer.Len() > 0 {
			inputBuffer.WriteString("\n")
		}
		inputBuffer.WriteString(input)

		fullInput := inputBuffer.String()
		if needsMoreInput(fullInput) {
			continue
		}

		if trimmed != "" {
			line.AppendHistory(fullInput)
		}

		l := lexer.New(fullInput)
		p := parser.New(l)
		program := p.ParseProgram()

		if errs := p.StructuredErrors(); len(errs) != 0 {
			printStructuredErrors(out, errs)
			inputBuffer.Reset()
			continue
		}

		evaluated := evaluator.Eval(program, env)
		if evaluated != nil {
			if errObj, ok := evaluated.(*evaluator.Error); ok {
				printRuntimeError(out, errObj)
			} else if evaluated.Type() == evaluator.NIL_OBJ {
				io.WriteString(out, "nil\n")
			} else if evaluated.Type() == evaluator.STRING_OBJ {
				// Quote strings so "" and nil are distinguishable
				str := evaluated.(*evaluator.String)
				fmt.Fprintf(out, "%q\n", str.Value)
			} else {
				io.WriteString(out, evaluated.Inspect())
				io.WriteString(out, "\n")
			}
		}

		inputBuffer.Reset()
	}
}

// handleReplCommand handles REPL meta-commands that start with ':'
func handleReplCommand(cmd string, env *evaluator.Environment, out io.Writer) {
	switch cmd {
	case ":help", ":h", ":?":
		fmt.Fprintln(out, "REPL Commands:")
		fmt.Fprintln(out, "  :help, :h, :?   Show this help")
		fmt.Fprintln(out, "  :env            Show variables in scope")
		fmt.Fprintln(out, "  :clear          Clear all user variables")
		fmt.Fprintln(out, "  :methods TYPE   List methods for a type (string, integer, ...)")
		fmt.Fprintln(out, "  exit, quit      Exit the REPL")

	case ":env":
		printEnvironment(env, out)

	case ":clear":
		fresh := evaluator.NewEnvironment()
		fresh.MaxDepth = env.MaxDepth
		fresh.Locale = env.Locale
		*env = *fresh
		fmt.Fprintln(out, "Environment cleared")

	default:
		if rest, found := strings.CutPrefix(cmd, ":methods "); found {
			printMethods(strings.TrimSpace(rest), out)
			return
		}
		fmt.Fprintf(out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
}

// printEnvironment displays all user-defined variables in the environment
func printEnvironment(env *evaluator.Environment, out io.Writer) {
	names := env.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "(no variables)")
		return
	}
	sort.Strings(names)

	for _, name := range names {
		obj, ok := env.Get(name)
		if !ok {
			continue
		}
		value := obj.Inspect()
		if len(value) > 60 {
			value = value[:57] + "..."
		}
		fmt.Fprintf(out, "  %s: %s = %s\n", name, strings.ToLower(string(obj.Type())), value)
	}
}

// printMethods lists a type's methods with arity and description
func printMethods(typeName string, out io.Writer) {
	registry := evaluator.GetRegistryForType(typeName)
	if registry == nil {
		fmt.Fprintf(out, "Unknown type: %s\n", typeName)
		return
	}
	for _, name := range registry.Names() {
		entry, _ := registry.Get(name)
		fmt.Fprintf(out, "  %-14s (%s)  %s\n", name, entry.Arity, entry.Description)
	}
}

// filterCompletions returns completion suggestions based on current input
func filterCompletions(line string, words []string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if line[len(line)-1] == ' ' || line[len(line)-1] == '\t' {
		return nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '.' || r == '('
	})
	if len(fields) == 0 {
		return nil
	}
	lastWord := fields[len(fields)-1]

	var matches []string
	for _, word := range words {
		if strings.HasPrefix(word, lastWord) {
			matches = append(matches, word)
		}
	}
	return matches
}

// needsMoreInput reports unclosed parentheses or strings, ignoring
// characters inside string literals and comments
func needsMoreInput(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	parenCount := 0
	inString := false
	quoteChar := byte(0)
	escapeNext := false

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if escapeNext {
			escapeNext = false
			continue
		}
		if inString && ch == '\\' {
			escapeNext = true
			continue
		}

		if inString {
			if ch == quoteChar {
				inString = false
			}
			continue
		}

		switch ch {
		case '"', '\'':
			inString = true
			quoteChar = ch
		case '#':
			// Comment runs to end of line
			for i < len(input) && input[i] != '\n' {
				i++
			}
		case '(':
			parenCount++
		case ')':
			parenCount--
		}
	}

	return parenCount > 0 || inString
}

// printStructuredErrors prints parser errors using structured error format
func printStructuredErrors(out io.Writer, errs []*errors.SorrelError) {
	for _, err := range errs {
		io.WriteString(out, err.PrettyString())
		io.WriteString(out, "\n")
	}
}

// printRuntimeError prints a runtime error with structured formatting
func printRuntimeError(out io.Writer, err *evaluator.Error) {
	io.WriteString(out, "Runtime error")

	if err.Line > 0 {
		fmt.Fprintf(out, ": line %d, column %d\n  %s\n", err.Line, err.Column, err.Message)
	} else {
		io.WriteString(out, "\n  "+err.Message+"\n")
	}

	for _, hint := range err.Hints {
		io.WriteString(out, "  hint: "+hint+"\n")
	}
}
