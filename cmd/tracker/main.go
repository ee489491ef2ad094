// Command tracker lists, records and reports income and expenses stored on
// an expense resource server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-expense-tracker/internal/client"
	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
	"github.com/sbilibin2017/gw-expense-tracker/internal/tracker"
)

// globals holds options shared by every command.
type globals struct {
	Server   string `help:"Expense server base URL." default:"http://localhost:8080" env:"TRACKER_SERVER_URL"`
	LogLevel string `name:"log-level" help:"Log level written to stderr." default:"warn" enum:"debug,info,warn,error"`
}

// commands / args available
type commands struct {
	Globals globals `embed:""`

	List   listCmd   `cmd help:"List expenses, most recent first."`
	Add    addCmd    `cmd help:"Record an expense or income."`
	Edit   editCmd   `cmd help:"Change an existing record."`
	Delete deleteCmd `cmd help:"Delete a record."`
	Report reportCmd `cmd help:"Show totals and the expense breakdown by category."`
}

// app is passed to every command's Run.
type app struct {
	ctx    context.Context
	ledger *tracker.Ledger
	out    io.Writer
}

type listCmd struct {
	Category string `short:"c" help:"Only show this category." default:"All"`
}

func (c *listCmd) Run(a *app) error {
	if err := a.ledger.Load(a.ctx); err != nil {
		return describe(err)
	}
	a.ledger.SetFilter(models.Category(c.Category))
	printExpenses(a.out, a.ledger.Visible())
	printTotals(a.out, a.ledger.Summary())
	return nil
}

type addCmd struct {
	Label    string `short:"l" required help:"Description."`
	Amount   string `short:"a" required help:"Amount greater than 0."`
	Date     string `short:"d" required help:"Date as YYYY-MM-DD."`
	Category string `short:"c" help:"Category." default:"Food"`
	Type     string `short:"t" help:"income or expense." default:"expense"`
}

func (c *addCmd) Run(a *app) error {
	created, err := a.ledger.Add(a.ctx, client.ExpenseForm{
		Label:    c.Label,
		Amount:   c.Amount,
		Date:     c.Date,
		Category: c.Category,
		Type:     c.Type,
	})
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(a.out, "Added %s\n", created.ID)
	return nil
}

type editCmd struct {
	ID       string `arg help:"Record id."`
	Label    string `short:"l" help:"New description."`
	Amount   string `short:"a" help:"New amount."`
	Date     string `short:"d" help:"New date as YYYY-MM-DD."`
	Category string `short:"c" help:"New category."`
	Type     string `short:"t" help:"New type, income or expense."`
}

// form starts from the current record and overlays the flags that were set.
func (c *editCmd) form(current models.Expense) client.ExpenseForm {
	form := client.FormFromExpense(current)
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&form.Label, c.Label)
	overlay(&form.Amount, c.Amount)
	overlay(&form.Date, c.Date)
	overlay(&form.Category, c.Category)
	overlay(&form.Type, c.Type)
	return form
}

func (c *editCmd) Run(a *app) error {
	if err := a.ledger.Load(a.ctx); err != nil {
		return describe(err)
	}
	current, ok := a.ledger.Find(c.ID)
	if !ok {
		return describe(client.ErrNotFound)
	}
	updated, err := a.ledger.Edit(a.ctx, c.ID, c.form(current))
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(a.out, "Updated %s\n", updated.ID)
	return nil
}

type deleteCmd struct {
	ID string `arg help:"Record id."`
}

func (c *deleteCmd) Run(a *app) error {
	if err := a.ledger.Remove(a.ctx, c.ID); err != nil {
		return describe(err)
	}
	fmt.Fprintln(a.out, "Deleted successfully")
	return nil
}

type reportCmd struct {
	Category string `short:"c" help:"Only report this category." default:"All"`
}

func (c *reportCmd) Run(a *app) error {
	if err := a.ledger.Load(a.ctx); err != nil {
		return describe(err)
	}
	a.ledger.SetFilter(models.Category(c.Category))
	summary := a.ledger.Summary()
	printTotals(a.out, summary)
	printBreakdown(a.out, summary.Breakdown)
	return nil
}

func main() {
	var cli commands
	kctx := kong.Parse(&cli,
		kong.Name("tracker"),
		kong.Description("Personal income and expense tracker."),
		kong.UsageOnError(),
	)

	if err := logger.InitializeConsole(cli.Globals.LogLevel); err != nil {
		kctx.FatalIfErrorf(err)
	}
	defer logger.Sync()

	c, err := client.New(nil, cli.Globals.Server)
	kctx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&app{ctx: ctx, ledger: tracker.NewLedger(c), out: os.Stdout})
	kctx.FatalIfErrorf(err)
}

// describe turns store errors into the messages shown to the user.
func describe(err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return errors.New(verr.Message)
	case errors.Is(err, client.ErrNotFound):
		return errors.New("Expense not found")
	case errors.Is(err, client.ErrStoreUnavailable):
		logger.Log.Debugw("store call failed", "error", err)
		return errors.New("Could not reach the expense server, please try again")
	}
	return err
}

func printExpenses(w io.Writer, expenses []models.Expense) {
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No transactions")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tTYPE\tAMOUNT")
	for _, e := range expenses {
		amount := tracker.FormatAmount(decimal.NewFromFloat(e.Amount))
		if e.Type == models.ExpenseTypeExpense {
			amount = "-" + amount
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Label, e.Category, e.Type, amount)
	}
	tw.Flush()
}

func printTotals(w io.Writer, s tracker.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Income\t%s\t\n", tracker.FormatAmount(s.Income))
	fmt.Fprintf(tw, "Expense\t%s\t\n", tracker.FormatAmount(s.Expense))
	fmt.Fprintf(tw, "Balance\t%s\t\n", tracker.FormatAmount(s.Net))
	tw.Flush()
}

func printBreakdown(w io.Writer, breakdown []tracker.CategoryAmount) {
	if len(breakdown) == 0 {
		fmt.Fprintln(w, "No expenses to break down")
		return
	}
	shares := tracker.CategoryShare(breakdown)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE\t")
	for i, b := range breakdown {
		pct := shares[i].Percent
		bar := strings.Repeat("#", int(pct.Div(decimal.NewFromInt(5)).Round(0).IntPart()))
		fmt.Fprintf(tw, "%s\t%s\t%s%%\t%s\n", b.Category, tracker.FormatAmount(b.Amount), pct.StringFixed(1), bar)
	}
	tw.Flush()
}
