package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kookbot/kook-go/pkg/domain/message/card"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Card message templates",
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded card templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPARAMS\tDESCRIPTION")
		for _, t := range container.Cards.List() {
			names := make([]string, 0, len(t.Params))
			for _, p := range t.Params {
				names = append(names, p.Name)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, strings.Join(names, ","), t.Description)
		}
		return w.Flush()
	},
}

var cardRenderCmd = &cobra.Command{
	Use:   "render <template> [key=value ...]",
	Short: "Render a card template to message JSON",
	Long: `Renders a card template with the given parameters and prints the
card message content. The template is looked up in cards.template_dir, or
read from --file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		var tmpl *card.Template
		if file != "" {
			t, err := card.LoadFile(file)
			if err != nil {
				return err
			}
			tmpl = t
		} else {
			t, ok := container.Cards.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown card template %q", args[0])
			}
			tmpl = t
		}

		params, err := parseParams(args[1:])
		if err != nil {
			return err
		}
		c, err := tmpl.Render(params)
		if err != nil {
			return err
		}
		content, err := card.Encode(c)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	},
}

func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q (want key=value)", arg)
		}
		params[k] = v
	}
	return params, nil
}

func init() {
	cardRenderCmd.Flags().String("file", "", "render this template file instead of a loaded template")

	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardRenderCmd)
}
