package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"coffeebeans/client/internal/domain"
	"coffeebeans/client/internal/render"
	"coffeebeans/client/internal/view"

	"github.com/spf13/cobra"
)

const browseHelp = `commands:
  ls                 show the current page
  next | prev        move one page
  page N             jump to page N
  country [N]        list countries, or pick option N
  type [N]           list bean types, or pick option N
  flavor [N]         list flavor categories, or pick option N
  open N             show bean N of the current page
  trends N           show the price history of bean N
  close              close the open bean
  quit`

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively page and filter through the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, format, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		b := &browser{
			ctx:    cmd.Context(),
			out:    cmd.OutOrStdout(),
			format: format,
			list:   app.ListView(view.NewWriterNotifier(cmd.ErrOrStderr())),
			detail: app.DetailView,
		}
		return b.run(cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

type browser struct {
	ctx    context.Context
	out    io.Writer
	format render.Format
	list   *view.ListController
	detail func() *view.DetailController
}

func (b *browser) run(in io.Reader) error {
	b.list.Init(b.ctx)
	if err := b.showPage(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "beans> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := b.handle(fields[0], fields[1:])
		if err != nil {
			fmt.Fprintf(b.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (b *browser) handle(command string, args []string) (bool, error) {
	switch command {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
		return false, nil
	case "ls":
		return false, b.showPage()
	case "next":
		b.list.NextPage(b.ctx)
		return false, b.showPage()
	case "prev":
		b.list.PrevPage(b.ctx)
		return false, b.showPage()
	case "page":
		n, err := intArg(args)
		if err != nil {
			return false, err
		}
		if err := b.list.GoToPage(b.ctx, n); err != nil {
			return false, err
		}
		return false, b.showPage()
	case "country", "type", "flavor":
		return false, b.pickFilter(filterDimension(command), args)
	case "open":
		bean, err := b.beanArg(args)
		if err != nil {
			return false, err
		}
		if _, err := b.list.SelectRow(bean, view.RowPanel); err != nil {
			return false, err
		}
		if selected := b.list.State().SelectedBean; selected != nil {
			return false, render.Bean(b.out, b.format, *selected)
		}
		return false, nil
	case "trends":
		return false, b.showTrends(args)
	case "close":
		b.list.CloseDetail()
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q, try help", command)
	}
}

func filterDimension(command string) domain.FilterDimension {
	switch command {
	case "country":
		return domain.DimensionCountry
	case "type":
		return domain.DimensionType
	default:
		return domain.DimensionFlavor
	}
}

func (b *browser) pickFilter(dim domain.FilterDimension, args []string) error {
	if len(args) == 0 {
		return render.Options(b.out, render.FormatTable, b.list.FilterRange(dim))
	}

	n, err := intArg(args)
	if err != nil {
		return err
	}
	if err := b.list.SelectFilter(b.ctx, dim, n); err != nil {
		return err
	}
	return b.showPage()
}

func (b *browser) showTrends(args []string) error {
	bean, err := b.beanArg(args)
	if err != nil {
		return err
	}

	payload, err := b.list.SelectRow(bean, view.RowNavigate)
	if err != nil {
		return err
	}

	detail := b.detail()
	detail.LoadBean(b.ctx, payload)

	state := detail.State()
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Fprintf(b.out, "%s (current %s/kg)\n", state.Bean.Name, formatPrice(state))
	return render.Trends(b.out, b.format, state.Trends)
}

func formatPrice(state view.DetailState) string {
	if !state.CurrentPrice.Valid {
		return "-"
	}
	return state.CurrentPrice.Decimal.StringFixed(2)
}

func (b *browser) showPage() error {
	state := b.list.State()
	if state.Loading {
		fmt.Fprintln(b.out, "loading...")
		return nil
	}
	if err := render.BeanPage(b.out, b.format, state.Beans, state.Pagination); err != nil {
		return err
	}
	fmt.Fprintf(b.out, "filters: country=%s type=%s flavor=%s\n",
		label(state.Country), label(state.Type), label(state.Flavor))
	return nil
}

func label(s domain.FilterSelection) string {
	if s.Label == "" {
		return domain.AllLabel
	}
	return s.Label
}

func (b *browser) beanArg(args []string) (domain.CoffeeBean, error) {
	n, err := intArg(args)
	if err != nil {
		return domain.CoffeeBean{}, err
	}
	beans := b.list.State().Beans
	if n < 1 || n > len(beans) {
		return domain.CoffeeBean{}, fmt.Errorf("no bean %d on this page", n)
	}
	return beans[n-1], nil
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return n, nil
}
