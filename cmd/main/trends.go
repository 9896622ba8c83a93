package main

import (
	"errors"

	"coffeebeans/client/internal/render"

	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends [bean name]",
	Short: "Show the price history of a bean, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, format, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		detail := app.DetailView()
		detail.LoadPriceTrends(cmd.Context(), args[0])

		state := detail.State()
		if state.Error != "" {
			return errors.New(state.Error)
		}
		return render.Trends(cmd.OutOrStdout(), format, state.Trends)
	},
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}
