package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/redmonkez12/ledger-api/internal/client/api"
	"github.com/redmonkez12/ledger-api/internal/client/guard"
)

type runFunc func(cmd *cobra.Command, args []string) error

// view wraps run with the route guard for the command's route.
func (a *App) view(run runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) error {
		route, ok := guard.Lookup(cmd.Annotations[routeKey])
		if !ok {
			return fmt.Errorf("command %q has no route", cmd.Name())
		}

		decision := guard.Decide(route, a.session)
		if decision.Allowed {
			return run(cmd, args)
		}

		switch decision.Redirect {
		case guard.RouteLogin:
			fmt.Fprintln(a.out, subtleStyle.Render("Log in to continue to "+decision.ReturnTo))
			if err := a.login(cmd, "", ""); err != nil {
				return err
			}
			return run(cmd, args)
		case guard.LandingRoute:
			if u, ok := a.session.User(); ok {
				fmt.Fprintln(a.out, subtleStyle.Render("Already logged in as "+u.Email))
			}
			return a.runTransactions(cmd, args)
		default:
			return fmt.Errorf("no view for route %q", decision.Redirect)
		}
	}
}

func (a *App) runRegister(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if name == "" || email == "" || password == "" {
		var err error
		name, email, password, err = a.prompt.Register()
		if err != nil {
			return err
		}
	}

	u, err := a.client.Register(cmd.Context(), name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("Welcome, %s!", u.Name)))
	return nil
}

func (a *App) runLogin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	return a.login(cmd, email, password)
}

func (a *App) login(cmd *cobra.Command, email, password string) error {
	if email == "" || password == "" {
		var err error
		email, password, err = a.prompt.Login(email)
		if err != nil {
			return err
		}
	}

	u, err := a.client.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, successStyle.Render("Logged in as "+u.Email))
	return nil
}

func (a *App) runLogout(_ *cobra.Command, _ []string) error {
	if err := a.client.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, successStyle.Render("Logged out"))
	return nil
}

func (a *App) runMe(cmd *cobra.Command, _ []string) error {
	u, err := a.client.Me(cmd.Context())
	if err != nil {
		return a.authedError(err)
	}

	fmt.Fprintln(a.out, titleStyle.Render(u.Name))
	fmt.Fprintf(a.out, "  ID:    %d\n", u.ID)
	fmt.Fprintf(a.out, "  Email: %s\n", u.Email)
	return nil
}

func (a *App) runTransactions(cmd *cobra.Command, _ []string) error {
	txs, err := a.client.ListTransactions(cmd.Context())
	if err != nil {
		return a.authedError(err)
	}

	fmt.Fprintln(a.out, titleStyle.Render("Transactions"))
	if len(txs) == 0 {
		fmt.Fprintln(a.out, subtleStyle.Render("No transactions yet. Add one with `ledger transactions new`."))
		return nil
	}

	fmt.Fprintln(a.out, renderTransactions(txs))
	return nil
}

func (a *App) runNewTransaction(cmd *cobra.Command, _ []string) error {
	var tx api.NewTransaction
	tx.Type, _ = cmd.Flags().GetString("type")
	tx.Mobile, _ = cmd.Flags().GetString("mobile")
	tx.Amount, _ = cmd.Flags().GetFloat64("amount")
	tx.Date, _ = cmd.Flags().GetString("date")
	tx.Paybill, _ = cmd.Flags().GetString("paybill")

	if tx.Type == "" || tx.Mobile == "" || tx.Amount == 0 || tx.Date == "" || tx.Paybill == "" {
		var err error
		tx, err = a.prompt.NewTransaction()
		if err != nil {
			return err
		}
	}

	id, err := a.client.AddTransaction(cmd.Context(), tx)
	if err != nil {
		return a.authedError(err)
	}

	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("Recorded transaction #%d", id)))
	return nil
}

// authedError explains a rejected token. The API client has already cleared
// the session by then.
func (a *App) authedError(err error) error {
	if api.IsUnauthorized(err) {
		return errors.New("session expired or invalid, log in again with `ledger login`")
	}
	return err
}

func renderTransactions(txs []api.Transaction) string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Date.Format("2006-01-02"),
			tx.Type,
			tx.Mobile,
			tx.Paybill,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(subtleStyle).
		Headers("ID", "Date", "Type", "Mobile", "Paybill", "Amount").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
