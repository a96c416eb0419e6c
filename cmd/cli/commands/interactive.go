package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (initialize once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands against the
same schedule store without restarting. The session keeps running until you
type 'exit' or 'quit'. Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\n🚀 Interaktive Sitzung gestartet")
			fmt.Println("'help' zeigt die Befehle, 'exit' oder 'quit' beendet die Sitzung")

			// Sibling commands, without the meta ones
			siblings := make(map[string]*cobra.Command)
			for _, subCmd := range cmd.Parent().Commands() {
				switch subCmd.Name() {
				case "interactive", "completion", "help":
					continue
				}
				siblings[subCmd.Name()] = subCmd
			}

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("dienstplan> ")
				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					fmt.Println("👋 Bis bald!")
					return nil
				}
				if line == "help" {
					printSessionHelp(siblings)
					continue
				}

				if err := runLine(siblings, line); err != nil {
					fmt.Printf("❌ %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			return nil
		},
	}
}

// runLine dispatches one input line to its command, bypassing Execute so the
// root's PersistentPreRunE does not reinitialize the application
func runLine(siblings map[string]*cobra.Command, line string) error {
	parts, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}

	target, ok := siblings[parts[0]]
	if !ok {
		return fmt.Errorf("unbekannter Befehl: %s ('help' zeigt die Befehle)", parts[0])
	}

	// Flags keep their values between runs unless reset
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := target.ParseFlags(parts[1:]); err != nil {
		return err
	}
	cmdArgs := target.Flags().Args()

	if err := target.Args(target, cmdArgs); err != nil {
		return err
	}
	return target.RunE(target, cmdArgs)
}

func printSessionHelp(siblings map[string]*cobra.Command) {
	names := make([]string, 0, len(siblings))
	for name := range siblings {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nVerfügbare Befehle:")
	for _, name := range names {
		fmt.Printf("  %-60s %s\n", siblings[name].Use, siblings[name].Short)
	}
	fmt.Println("\n  help                           Zeigt diese Übersicht")
	fmt.Println("  exit, quit                     Beendet die Sitzung")
}

// splitArgs splits an input line into arguments, honoring single and double
// quotes so names with spaces survive
func splitArgs(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args, nil
}
