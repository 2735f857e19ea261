package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/redmonkez12/ledger-api/internal/client/api"
)

// Prompter collects input interactively when flags do not supply it.
type Prompter interface {
	Login(email string) (string, string, error)
	Register() (name, email, password string, err error)
	NewTransaction() (api.NewTransaction, error)
}

// huhPrompter asks with huh forms.
type huhPrompter struct{}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func (huhPrompter) Login(email string) (string, string, error) {
	var password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(required("email")),

			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(required("password")),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(email), password, nil
}

func (huhPrompter) Register() (string, string, string, error) {
	var name, email, password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(required("name")),

			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(required("email")),

			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(required("password")),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(name), strings.TrimSpace(email), password, nil
}

func (huhPrompter) NewTransaction() (api.NewTransaction, error) {
	var (
		txType  string
		mobile  string
		amount  string
		date    = time.Now().Format(time.DateOnly)
		paybill string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Deposit", "deposit"),
					huh.NewOption("Withdrawal", "withdrawal"),
					huh.NewOption("Payment", "payment"),
				).
				Value(&txType),

			huh.NewInput().
				Title("Mobile").
				Value(&mobile).
				Validate(required("mobile")),

			huh.NewInput().
				Title("Amount").
				Value(&amount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v == 0 {
						return fmt.Errorf("amount must be a non-zero number")
					}
					return nil
				}),

			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&date).
				Validate(required("date")),

			huh.NewInput().
				Title("Paybill").
				Value(&paybill).
				Validate(required("paybill")),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return api.NewTransaction{}, err
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return api.NewTransaction{}, fmt.Errorf("parse amount: %w", err)
	}

	return api.NewTransaction{
		Type:    txType,
		Mobile:  strings.TrimSpace(mobile),
		Amount:  value,
		Date:    strings.TrimSpace(date),
		Paybill: strings.TrimSpace(paybill),
	}, nil
}
