// Package topics adds markdown help topics to a cobra command tree.
// `polka help topics` lists them and `polka help <topic>` prints one.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one markdown document
type Topic struct {
	Name  string
	Title string
	Body  string
}

// Load reads every .md file at the top of fsys. A topic's title is its
// first level-one heading, or its name when it has none.
func Load(fsys fs.FS) ([]Topic, error) {
	files, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}
	out := make([]Topic, 0, len(files))
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("failed to read topic %s: %w", f, err)
		}
		name := strings.TrimSuffix(path.Base(f), ".md")
		body := string(data)
		out = append(out, Topic{Name: name, Title: heading(body, name), Body: body})
	}
	return out, nil
}

func heading(body, fallback string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return fallback
}

// Install replaces root's help command with one that also serves the
// topics found in fsys
func Install(root *cobra.Command, fsys fs.FS, render Renderer) error {
	list, err := Load(fsys)
	if err != nil {
		return err
	}
	if render == nil {
		render = Plain
	}
	byName := make(map[string]Topic, len(list))
	for _, t := range list {
		byName[t.Name] = t
	}

	defaultHelp := root.HelpFunc()
	app := root.Name()

	help := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf("Help for any command or topic.\n\nRun '%s help topics' to list the topics.", app),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := []string{"topics"}
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() {
					names = append(names, c.Name())
				}
			}
			for _, t := range list {
				names = append(names, t.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				defaultHelp(root, nil)
			case args[0] == "topics":
				printList(out, app, list)
			default:
				if t, ok := byName[args[0]]; ok {
					fmt.Fprint(out, render(t.Body))
					return
				}
				target, _, err := root.Find(args)
				if err != nil || target == nil || target == root {
					cmd.Printf("Unknown help topic %q\n", strings.Join(args, " "))
					_ = root.Usage()
					return
				}
				defaultHelp(target, nil)
			}
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
		}
	}
	root.SetHelpCommand(help)
	return nil
}

func printList(w io.Writer, app string, list []Topic) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}
	width := 0
	for _, t := range list {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}
	fmt.Fprintln(w, "Help topics:")
	for _, t := range list {
		fmt.Fprintf(w, "  %-*s  %s\n", width, t.Name, t.Title)
	}
	fmt.Fprintf(w, "\nRun '%s help <topic>' to read one.\n", app)
}
