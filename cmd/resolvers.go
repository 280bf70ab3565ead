/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/samwightt/gqllog/pkg/logdetails"
	"github.com/samwightt/gqllog/pkg/render"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
)

type resolversOptions struct {
	name      string
	nameRegex string
	hasArg    []string
}

func fieldToResolverInfo(field *ast.Field) ResolverInfo {
	info := ResolverInfo{Name: field.Name}
	if field.Alias != "" && field.Alias != field.Name {
		info.Alias = field.Alias
	}
	for _, arg := range field.Arguments {
		info.Arguments = append(info.Arguments, arg.Name)
	}
	if field.Position != nil {
		info.Line = field.Position.Line
		info.Column = field.Position.Column
	}
	return info
}

func formatResolverName(r ResolverInfo) string {
	name := r.Name
	if r.Alias != "" {
		name = r.Alias + ": " + r.Name
	}
	if len(r.Arguments) == 0 {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(r.Arguments, ", "))
}

func formatResolverText(r ResolverInfo) string {
	return formatResolverName(r)
}

func formatResolversPretty(resolvers []ResolverInfo) string {
	t := makeTable()

	for _, r := range resolvers {
		t.Row(r.Name, r.Alias, strings.Join(r.Arguments, ", "), positionString(r.Line, r.Column))
	}
	t.Headers("resolver", "alias", "arguments", "position")

	return t.String()
}

func matchesHasArgFilter(r ResolverInfo, hasArg []string) bool {
	for _, want := range hasArg {
		found := false
		for _, arg := range r.Arguments {
			if arg == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func NewResolversCmd() *cobra.Command {
	opts := &resolversOptions{}

	cmd := &cobra.Command{
		Use:   "resolvers [file]",
		Short: "Lists the top-level resolvers a query selects.",
		Long: `Lists the top-level fields of the first operation in a query, in the order
they are written. These are the names logged as "resolvers".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolvers(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Filter resolvers by name using a glob pattern (e.g., book*)")
	cmd.Flags().StringVar(&opts.nameRegex, "name-regex", "", "Filter resolvers by name using a regex pattern")
	cmd.Flags().StringArrayVar(&opts.hasArg, "has-arg", nil, "Filter to resolvers that take the given argument (repeatable)")

	return cmd
}

func runResolvers(cmd *cobra.Command, args []string, opts *resolversOptions) error {
	var nameRegex *regexp.Regexp
	if opts.nameRegex != "" {
		var err error
		nameRegex, err = regexp.Compile(opts.nameRegex)
		if err != nil {
			return fmt.Errorf("invalid regex pattern for --name-regex: %w", err)
		}
	}

	input, err := readQuery(cmd, args)
	if err != nil {
		return err
	}

	var resolvers []ResolverInfo
	for _, field := range logdetails.Parse(input.Content).Selections() {
		resolvers = append(resolvers, fieldToResolverInfo(field))
	}

	resolvers = filterSlice(resolvers, func(r ResolverInfo) bool {
		if opts.name != "" {
			if matched, _ := filepath.Match(opts.name, r.Name); !matched {
				return false
			}
		}
		if nameRegex != nil && !nameRegex.MatchString(r.Name) {
			return false
		}
		return matchesHasArgFilter(r, opts.hasArg)
	})

	if len(resolvers) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No resolvers found that match the filters.")
	}

	renderer := render.Renderer[ResolverInfo]{
		Data:         resolvers,
		TextFormat:   formatResolverText,
		PrettyFormat: formatResolversPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func positionString(line, column int) string {
	return strconv.Itoa(line) + ":" + strconv.Itoa(column)
}
