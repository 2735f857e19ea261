package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/ledger-api/internal/client/api"
	"github.com/redmonkez12/ledger-api/internal/client/session"
)

var alice = session.User{ID: 1, Name: "Alice", Email: "a@x.com"}

type fakePrompter struct {
	logins    int
	registers int
	txs       int
}

func (f *fakePrompter) Login(string) (string, string, error) {
	f.logins++
	return "a@x.com", "pw123", nil
}

func (f *fakePrompter) Register() (string, string, string, error) {
	f.registers++
	return "Alice", "a@x.com", "pw123", nil
}

func (f *fakePrompter) NewTransaction() (api.NewTransaction, error) {
	f.txs++
	return api.NewTransaction{Type: "deposit", Mobile: "0700", Amount: 5, Date: "2024-03-02", Paybill: "111"}, nil
}

// fakeServer answers like the ledger API for the token "tok".
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(r *http.Request) bool { return r.Header.Get("Authorization") == "Bearer tok" }
	unauthorized := map[string]string{"error": "invalid token", "code": "INVALID_TOKEN"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok", "user": alice})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"token": "tok", "user": alice})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			writeJSON(w, http.StatusUnauthorized, unauthorized)
			return
		}
		writeJSON(w, http.StatusOK, alice)
	})
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			writeJSON(w, http.StatusUnauthorized, unauthorized)
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "type": "deposit", "mobile": "0700", "amount": 10, "date": "2024-03-01T00:00:00Z", "paybill": "111"},
		})
	})
	mux.HandleFunc("POST /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			writeJSON(w, http.StatusUnauthorized, unauthorized)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]int64{"id": 7})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, store *session.MemoryStore, prompt *fakePrompter, args ...string) (string, error) {
	t.Helper()

	srv := fakeServer(t)
	cmd := NewRootCommand(WithStore(store), WithPrompter(prompt), WithHTTPClient(srv.Client()))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", srv.URL}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func loggedIn(token string) *session.MemoryStore {
	u := alice
	return &session.MemoryStore{State: session.State{User: &u, Token: token}}
}

func TestTransactions_LoggedOutRedirectsToLoginThenResumes(t *testing.T) {
	store := &session.MemoryStore{}
	prompt := &fakePrompter{}

	out, err := run(t, store, prompt, "transactions")
	require.NoError(t, err)

	assert.Equal(t, 1, prompt.logins)
	assert.Contains(t, out, "Log in to continue to /transactions")
	assert.Contains(t, out, "Logged in as a@x.com")
	assert.Contains(t, out, "deposit")
	assert.Equal(t, "tok", store.State.Token)
}

func TestLogin_LoggedInGoesToLanding(t *testing.T) {
	prompt := &fakePrompter{}

	out, err := run(t, loggedIn("tok"), prompt, "login")
	require.NoError(t, err)

	assert.Zero(t, prompt.logins)
	assert.Contains(t, out, "Already logged in as a@x.com")
	assert.Contains(t, out, "Transactions")
}

func TestLogin_WithFlags(t *testing.T) {
	store := &session.MemoryStore{}
	prompt := &fakePrompter{}

	out, err := run(t, store, prompt, "login", "--email", "a@x.com", "--password", "pw123")
	require.NoError(t, err)

	assert.Zero(t, prompt.logins)
	assert.Contains(t, out, "Logged in as a@x.com")
	assert.Equal(t, "tok", store.State.Token)
}

func TestRoot_LoggedOutOpensRegister(t *testing.T) {
	store := &session.MemoryStore{}
	prompt := &fakePrompter{}

	out, err := run(t, store, prompt)
	require.NoError(t, err)

	assert.Equal(t, 1, prompt.registers)
	assert.Contains(t, out, "Welcome, Alice!")
	assert.Equal(t, &alice, store.State.User)
}

func TestRegister_WithFlags(t *testing.T) {
	store := &session.MemoryStore{}
	prompt := &fakePrompter{}

	_, err := run(t, store, prompt, "register", "--name", "Alice", "--email", "a@x.com", "--password", "pw123")
	require.NoError(t, err)

	assert.Zero(t, prompt.registers)
	assert.Equal(t, "tok", store.State.Token)
}

func TestNewTransaction(t *testing.T) {
	prompt := &fakePrompter{}

	out, err := run(t, loggedIn("tok"), prompt, "transactions", "new",
		"--type", "deposit", "--mobile", "0700", "--amount", "12.5", "--date", "2024-03-01", "--paybill", "111")
	require.NoError(t, err)

	assert.Zero(t, prompt.txs)
	assert.Contains(t, out, "Recorded transaction #7")
}

func TestNewTransaction_PromptsForMissingFields(t *testing.T) {
	prompt := &fakePrompter{}

	_, err := run(t, loggedIn("tok"), prompt, "tx", "new")
	require.NoError(t, err)
	assert.Equal(t, 1, prompt.txs)
}

func TestMe(t *testing.T) {
	out, err := run(t, loggedIn("tok"), &fakePrompter{}, "me")
	require.NoError(t, err)

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "a@x.com")
}

func TestMe_RejectedTokenClearsSession(t *testing.T) {
	store := loggedIn("stale")

	_, err := run(t, store, &fakePrompter{}, "me")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "log in again")
	assert.Equal(t, session.State{}, store.State)
}

func TestLogout(t *testing.T) {
	store := loggedIn("tok")

	out, err := run(t, store, &fakePrompter{}, "logout")
	require.NoError(t, err)

	assert.Contains(t, out, "Logged out")
	assert.Equal(t, session.State{}, store.State)
}
