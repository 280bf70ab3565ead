/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/gqllog/pkg/logdetails"
	"github.com/samwightt/gqllog/pkg/render"
	"github.com/spf13/cobra"
)

type detailsOptions struct {
	strict bool
}

func recordRows(rec logdetails.Record) []ResolverParams {
	rows := make([]ResolverParams, 0, len(rec.Params))
	for _, p := range rec.Params {
		rows = append(rows, ResolverParams{Resolver: p.Name, Params: p.Value})
	}
	return rows
}

func formatDetailsText(row ResolverParams) string {
	return fmt.Sprintf("%s %s", row.Resolver, compactJSON(row.Params))
}

func formatDetailsPretty(rows []ResolverParams) string {
	t := makeTable()

	for _, row := range rows {
		t.Row(row.Resolver, compactJSON(row.Params))
	}
	t.Headers("resolver", "params")

	return t.String()
}

func NewDetailsCmd() *cobra.Command {
	opts := &detailsOptions{}

	cmd := &cobra.Command{
		Use:   "details [file]",
		Short: "Prints the log record for a query.",
		Long: `Prints the record that is merged into the request log for a query.

With -f json the output is exactly the record: {"params": [...], "resolvers": [...]}.
Blank or unparsable queries produce the empty record {} unless --strict is set,
in which case they are reported as errors.`,
		Example: `  gqllog details query.graphql -f json
  gqllog details -q '{ books(authorId: 1) { id } }'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetails(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on blank or unparsable queries instead of printing an empty record")

	return cmd
}

func runDetails(cmd *cobra.Command, args []string, opts *detailsOptions) error {
	input, err := readQuery(cmd, args)
	if err != nil {
		return err
	}
	vars, err := loadVariables()
	if err != nil {
		return err
	}

	parsed := logdetails.Parse(input.Content)
	if opts.strict && !parsed.OK() {
		fmt.Fprint(cmd.ErrOrStderr(), formatParseFailure(parsed.Err, input))
		return ErrParseFailed
	}

	rec := logdetails.DetailsFor(parsed, vars)
	if rec.IsEmpty() && outputFormat != render.FormatJSON {
		fmt.Fprintln(cmd.ErrOrStderr(), "No resolvers found in query.")
	}

	renderer := render.Renderer[ResolverParams]{
		Data:         recordRows(rec),
		Value:        rec,
		Compact:      true,
		TextFormat:   formatDetailsText,
		PrettyFormat: formatDetailsPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
