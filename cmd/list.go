package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailSuite/internal/cli/ui"
	"mailSuite/internal/fixtures"
	"mailSuite/internal/suites"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать наборы и их сценарии",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	built, err := suites.Build(suites.Deps{Messages: fixtures.Default()})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range built {
		fmt.Fprintf(out, ui.ColorBold+"%s"+ui.ColorReset+" - %s\n", s.Name, s.Description)
		for _, sc := range s.Scenarios {
			fmt.Fprintf(out, "  %s %s\n", ui.Paint(ui.ColorCyan, sc.Name), ui.Paint(ui.ColorGray, sc.Description))
			for _, c := range sc.Cases() {
				if c.Name != "" {
					fmt.Fprintf(out, "      [%s]\n", c.Name)
				}
			}
		}
	}
	return nil
}
