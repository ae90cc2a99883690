package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/widget/pedigree"
)

func (c *CLI) pedigreeCommand() *cobra.Command {
	var (
		depth int
		dot   bool
	)

	cmd := &cobra.Command{
		Use:   "pedigree",
		Short: "List the ancestors and their genetic influence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			pd, err := newPedigree(cfg, depth)
			if err != nil {
				return err
			}
			if dot {
				_, err := io.WriteString(cmd.OutOrStdout(), pd.DOT())
				return err
			}
			printPedigree(cmd.OutOrStdout(), pd)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 0, "generations to list, including the horse itself (default from config)")
	cmd.Flags().BoolVar(&dot, "dot", false, "print the Graphviz DOT source instead")
	return cmd
}

func newPedigree(cfg *config.Config, depth int) (*pedigree.Pedigree, error) {
	if depth == 0 {
		depth = cfg.Pedigree.Depth
	}
	var opts []pedigree.Option
	if depth > 0 {
		opts = append(opts, pedigree.WithDepth(depth))
	}
	return pedigree.New(cfg.Pedigree.Root, opts...)
}

// printPedigree prints one line per ancestor, indented by generation, sire
// before dam.
func printPedigree(w io.Writer, pd *pedigree.Pedigree) {
	ancestors := pd.Ancestors()
	byIndex := make(map[int]pedigree.Ancestor, len(ancestors))
	for _, a := range ancestors {
		byIndex[a.Index] = a
	}

	var walk func(i int)
	walk = func(i int) {
		a, ok := byIndex[i]
		if !ok {
			return
		}
		indent := strings.Repeat("  ", a.Generation)
		name := a.Name
		switch a.Line {
		case entity.Sire:
			name = styleSire.Render(name)
		case entity.Dam:
			name = styleDam.Render(name)
		default:
			name = StyleTitle.Render(name)
		}
		line := indent + name
		if role := a.Role(); role != "" {
			line += " " + StyleDim.Render(role)
		}
		line += "  " + StyleNumber.Render(fmt.Sprintf("%g%%", a.Influence*100)) + "  " + StyleDim.Render(a.Key())
		fmt.Fprintln(w, line)
		walk(2*i + 1)
		walk(2*i + 2)
	}
	walk(0)
	printDetail(w, "%d ancestors over %d generations", len(ancestors), pd.Depth())
}
