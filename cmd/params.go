/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/samwightt/gqllog/pkg/logdetails"
	"github.com/samwightt/gqllog/pkg/render"
	"github.com/spf13/cobra"
)

type paramsOptions struct {
	resolver  string
	name      string
	nameRegex string
}

// flattenParams walks nested pair lists and returns one entry per leaf value.
// Lists are leaves.
func flattenParams(resolver, prefix string, params logdetails.Params) []ParamInfo {
	var out []ParamInfo
	for _, p := range params {
		path := prefix + "." + p.Name
		if nested, ok := p.Value.(logdetails.Params); ok {
			out = append(out, flattenParams(resolver, path, nested)...)
			continue
		}
		out = append(out, ParamInfo{Resolver: resolver, Path: path, Name: p.Name, Value: p.Value})
	}
	return out
}

func recordParams(rec logdetails.Record) []ParamInfo {
	var out []ParamInfo
	for _, p := range rec.Params {
		if nested, ok := p.Value.(logdetails.Params); ok {
			out = append(out, flattenParams(p.Name, p.Name, nested)...)
		}
	}
	return out
}

// uniqueResolvers is used for "did you mean" suggestions.
func uniqueResolvers(rec logdetails.Record) []string {
	seen := map[string]bool{}
	var names []string
	for _, name := range rec.Resolvers {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func formatParamText(p ParamInfo) string {
	return fmt.Sprintf("%s = %s", p.Path, compactJSON(p.Value))
}

func formatParamsPretty(params []ParamInfo) string {
	t := makeTable()

	for _, p := range params {
		t.Row(p.Resolver, p.Path, compactJSON(p.Value))
	}
	t.Headers("resolver", "param", "value")

	return t.String()
}

func NewParamsCmd() *cobra.Command {
	opts := &paramsOptions{}

	cmd := &cobra.Command{
		Use:   "params [file]",
		Short: "Lists the logged params as flat paths.",
		Long: `Lists every leaf value of the logged params as a dotted path, such as
chapter.storyAttributes.charCount = 1.

When variables are supplied, every resolver carries the full variable map, so the
same paths appear under each resolver.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParams(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.resolver, "resolver", "", "Only show params of the given resolver")
	cmd.Flags().StringVar(&opts.name, "name", "", "Filter params by name using a glob pattern (e.g., *Id)")
	cmd.Flags().StringVar(&opts.nameRegex, "name-regex", "", "Filter params by name using a regex pattern")

	return cmd
}

func runParams(cmd *cobra.Command, args []string, opts *paramsOptions) error {
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
	vars, err := loadVariables()
	if err != nil {
		return err
	}

	rec := logdetails.Details(logdetails.Request{Query: input.Content, Variables: vars})

	if opts.resolver != "" {
		resolvers := uniqueResolvers(rec)
		found := false
		for _, name := range resolvers {
			if name == opts.resolver {
				found = true
				break
			}
		}
		if !found {
			if suggestion := findClosest(opts.resolver, resolvers); suggestion != "" {
				return fmt.Errorf("resolver '%s' is not selected by the query, did you mean '%s'?", opts.resolver, suggestion)
			}
			return fmt.Errorf("resolver '%s' is not selected by the query", opts.resolver)
		}
	}

	params := filterSlice(recordParams(rec), func(p ParamInfo) bool {
		if opts.resolver != "" && p.Resolver != opts.resolver {
			return false
		}
		if opts.name != "" {
			if matched, _ := filepath.Match(opts.name, p.Name); !matched {
				return false
			}
		}
		return nameRegex == nil || nameRegex.MatchString(p.Name)
	})

	if len(params) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No params found that match the filters.")
	}

	renderer := render.Renderer[ParamInfo]{
		Data:         params,
		TextFormat:   formatParamText,
		PrettyFormat: formatParamsPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
