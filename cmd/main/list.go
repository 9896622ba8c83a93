package main

import (
	"fmt"

	"coffeebeans/client/internal/domain"
	"coffeebeans/client/internal/render"

	"github.com/spf13/cobra"
)

var listFlags struct {
	page     int
	country  string
	beanType string
	flavor   string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of coffee beans",
	Long: `Lists one page of coffee beans. The type filter accepts the API value
(common, premium) or its label (商业豆, 精品豆).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, format, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		beanType, err := resolveTypeFlag(listFlags.beanType)
		if err != nil {
			return err
		}

		resp, err := app.Client.ListBeans(cmd.Context(), listFlags.page, domain.BeanFilters{
			Country:        listFlags.country,
			Type:           beanType,
			FlavorCategory: listFlags.flavor,
		})
		if err != nil {
			return err
		}

		return render.BeanPage(cmd.OutOrStdout(), format, resp.Data, resp.Pagination)
	},
}

func resolveTypeFlag(v string) (string, error) {
	switch v {
	case "", domain.BeanTypeCommon, domain.BeanTypePremium:
		return v, nil
	}
	if value, ok := domain.TypeValueForLabel(v); ok {
		return value, nil
	}
	return "", fmt.Errorf("unknown bean type %q", v)
}

func init() {
	listCmd.Flags().IntVar(&listFlags.page, "page", 1, "page number, starting at 1")
	listCmd.Flags().StringVar(&listFlags.country, "country", "", "only beans from this country")
	listCmd.Flags().StringVar(&listFlags.beanType, "type", "", "only beans of this type")
	listCmd.Flags().StringVar(&listFlags.flavor, "flavor", "", "only beans in this flavor category")
	rootCmd.AddCommand(listCmd)
}
