// Package cli implements the ledger terminal client. Each command is a view
// with a route in the guard table and is only run when the guard allows it.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/ledger-api/internal/client/api"
	"github.com/redmonkez12/ledger-api/internal/client/guard"
	"github.com/redmonkez12/ledger-api/internal/client/session"
)

const (
	defaultServer = "http://localhost:3000"
	routeKey      = "route"
)

// App is the state shared by every command of one invocation.
type App struct {
	serverURL   string
	sessionFile string

	store      session.Store
	httpClient *http.Client
	prompt     Prompter

	session *session.Session
	client  *api.Client
	out     io.Writer
}

// Option configures an App.
type Option func(*App)

// WithStore replaces the session file.
func WithStore(store session.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithHTTPClient replaces the client used to reach the server.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) {
		a.httpClient = hc
	}
}

// WithPrompter replaces the interactive forms.
func WithPrompter(p Prompter) Option {
	return func(a *App) {
		a.prompt = p
	}
}

// NewRootCommand builds the ledger command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &App{prompt: huhPrompter{}}
	for _, opt := range opts {
		opt(a)
	}

	server := os.Getenv("LEDGER_SERVER")
	if server == "" {
		server = defaultServer
	}

	root := &cobra.Command{
		Use:               "ledger",
		Short:             "Terminal client for the ledger API",
		Long:              "Register, log in and manage transactions from the terminal. Running ledger without a command opens the register view.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Annotations:       map[string]string{routeKey: guard.RouteRoot},
		RunE:              a.view(a.runRegister),
	}
	root.PersistentFlags().StringVar(&a.serverURL, "server", server, "API base URL (env LEDGER_SERVER)")
	root.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "Session file (default <config dir>/ledger/session.json)")
	addCredentialFlags(root, true)

	registerCmd := &cobra.Command{
		Use:         "register",
		Short:       "Create an account",
		Annotations: map[string]string{routeKey: guard.RouteRegister},
		RunE:        a.view(a.runRegister),
	}
	addCredentialFlags(registerCmd, true)

	loginCmd := &cobra.Command{
		Use:         "login",
		Short:       "Log in to an existing account",
		Annotations: map[string]string{routeKey: guard.RouteLogin},
		RunE:        a.view(a.runLogin),
	}
	addCredentialFlags(loginCmd, false)

	logoutCmd := &cobra.Command{
		Use:         "logout",
		Short:       "Forget the stored session",
		Annotations: map[string]string{routeKey: guard.RouteLogout},
		RunE:        a.view(a.runLogout),
	}

	meCmd := &cobra.Command{
		Use:         "me",
		Short:       "Show the logged-in user",
		Annotations: map[string]string{routeKey: guard.RouteMe},
		RunE:        a.view(a.runMe),
	}

	transactionsCmd := &cobra.Command{
		Use:         "transactions",
		Aliases:     []string{"tx"},
		Short:       "List transactions",
		Annotations: map[string]string{routeKey: guard.RouteTransactions},
		RunE:        a.view(a.runTransactions),
	}

	newTxCmd := &cobra.Command{
		Use:         "new",
		Short:       "Add a transaction",
		Annotations: map[string]string{routeKey: guard.RouteNewTx},
		RunE:        a.view(a.runNewTransaction),
	}
	newTxCmd.Flags().String("type", "", "Transaction type")
	newTxCmd.Flags().String("mobile", "", "Mobile number")
	newTxCmd.Flags().Float64("amount", 0, "Amount")
	newTxCmd.Flags().String("date", "", "Date (YYYY-MM-DD or RFC 3339)")
	newTxCmd.Flags().String("paybill", "", "Paybill number")

	transactionsCmd.AddCommand(newTxCmd)
	root.AddCommand(registerCmd, loginCmd, logoutCmd, meCmd, transactionsCmd)

	return root
}

func addCredentialFlags(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().String("name", "", "Display name")
	}
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password")
}

// setup loads the session and builds the API client.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	a.out = cmd.OutOrStdout()

	if a.store == nil {
		path := a.sessionFile
		if path == "" {
			p, err := session.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		a.store = session.NewFileStore(path)
	}

	sess, err := session.New(a.store)
	if err != nil {
		return fmt.Errorf("%w (remove the session file to reset)", err)
	}
	a.session = sess

	var clientOpts []api.Option
	if a.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(a.httpClient))
	}
	a.client = api.New(a.serverURL, sess, clientOpts...)

	return nil
}
