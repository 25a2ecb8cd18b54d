package main

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed docs/*.md
var docsFS embed.FS

// topics returns the embedded documentation topics by name
func topics() (map[string]string, error) {
	entries, err := fs.ReadDir(docsFS, "docs")
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		content, err := docsFS.ReadFile("docs/" + e.Name())
		if err != nil {
			return nil, err
		}
		result[name] = string(content)
	}
	return result, nil
}

// renderMarkdown renders a topic for the terminal, falling back to the
// raw markdown when glamour cannot be set up.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: MsgDocsShort,
	Long: `Without arguments, docs lists the available topics. With a topic
name it renders that topic's documentation.`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		all, err := topics()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := topics()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'rigup docs <topic>' to read one.")
			return nil
		}

		content, ok := all[args[0]]
		if !ok {
			return fmt.Errorf("unknown topic %q, run 'rigup docs' to list topics", args[0])
		}
		fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(content))
		return nil
	},
}
