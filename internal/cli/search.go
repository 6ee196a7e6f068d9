package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feedkit/gdata.go/pkg/search"
	"github.com/feedkit/gdata.go/pkg/web"
)

func newSearchCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "search [key=value...]",
		Short: "Run one search and print the result",
		Long: `Run one search and print the result page.

Arguments are search parameters; repeat a key to give several values:

  gdata search query=curry cuisine=thai cuisine=lao cookingTime=30

Without a query argument the command browses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := ParseParams(args)
			if err != nil {
				return err
			}
			renderer, err := web.RendererFor(output)
			if err != nil {
				return err
			}

			_, builder, err := a.client()
			if err != nil {
				return err
			}

			res, err := builder.Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			return renderer.Render(cmd.OutOrStdout(), web.NewPage(res))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format (yaml or json)")
	return cmd
}

// ParseParams reads key=value arguments. Values of a repeated key accumulate
// in order.
func ParseParams(args []string) (search.Params, error) {
	p := search.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", arg)
		}
		p[key] = append(p[key], value)
	}
	return p, nil
}
