/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samwightt/gqllog/pkg/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	queryText     string
	variablesJSON string
	variablesFile string
	outputFormat  render.Format
)

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gqllog",
		Short: "Summarize GraphQL requests the way they appear in request logs",
		Long: `gqllog turns a GraphQL request into the compact record that gets merged
into request log lines: the top-level resolvers a query selects and the arguments
or variables handed to them.

Queries are read from a file argument, from --query, or from stdin. Variables are
given as a JSON object with --variables or --variables-file. When variables are
present every resolver is logged with the whole variable map; otherwise the
literal arguments written in the query are logged.

The serve command runs a reverse proxy in front of a GraphQL server and writes one
structured log line per request.`,
		Example: `  # Show the log record for a query file
  gqllog details query.graphql -f json

  # Same query, with variables
  gqllog details query.graphql --variables '{"authorId": 1}'

  # Flattened argument paths, only for the books resolver
  gqllog params query.graphql --resolver books

  # Check that a query parses
  echo '{ books { id } }' | gqllog check

  # Log every request sent to a GraphQL server
  gqllog serve --listen :8080 --upstream http://localhost:4000`,
		SilenceUsage: true,
	}

	// Persistent flags
	var formatStr string
	cmd.PersistentFlags().StringVarP(&formatStr, "format", "f", formatFlag(), "Output format: json, text, pretty (default: pretty if interactive, text otherwise)")
	cmd.PersistentFlags().StringVarP(&queryText, "query", "q", "", "Query text (instead of a file or stdin)")
	cmd.PersistentFlags().StringVar(&variablesJSON, "variables", "", "Variables as a JSON object")
	cmd.PersistentFlags().StringVar(&variablesFile, "variables-file", "", "File containing variables as a JSON object")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		outputFormat, err = render.ParseFormat(formatStr)
		return err
	}

	// Add all subcommands
	cmd.AddCommand(NewDetailsCmd())
	cmd.AddCommand(NewResolversCmd())
	cmd.AddCommand(NewParamsCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	} else {
		cmd.SetIn(new(bytes.Buffer))
	}

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}
