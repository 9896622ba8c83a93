package main

import (
	"coffeebeans/client/internal/render"

	"github.com/spf13/cobra"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries beans can be filtered by",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, format, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		countries, err := app.Client.ListCountries(cmd.Context())
		if err != nil {
			return err
		}
		return render.Options(cmd.OutOrStdout(), format, countries)
	},
}

var flavorsCmd = &cobra.Command{
	Use:   "flavors",
	Short: "List the flavor categories beans can be filtered by",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, format, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		flavors, err := app.Client.ListFlavorCategories(cmd.Context())
		if err != nil {
			return err
		}
		return render.Options(cmd.OutOrStdout(), format, flavors)
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(flavorsCmd)
}
