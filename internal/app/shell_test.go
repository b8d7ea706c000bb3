package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/sweetshop-client/internal/api"
	"github.com/sweetshop/sweetshop-client/internal/catalog"
	"github.com/sweetshop/sweetshop-client/internal/config"
	"github.com/sweetshop/sweetshop-client/internal/model"
	"github.com/sweetshop/sweetshop-client/internal/session"
	"github.com/sweetshop/sweetshop-client/internal/stub"
)

// runScript drives the shell with a scripted stdin and returns
// everything it printed.
func runScript(t *testing.T, srv *stub.Server, script string) string {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	sess := session.New(session.NewMemoryStorage())
	client := api.New(config.Config{BaseURL: ts.URL + "/api"}, sess)
	cat := catalog.New(client)

	var out bytes.Buffer
	shell := New(sess, client, cat, strings.NewReader(script), &out)
	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func newSeededStub(t *testing.T) *stub.Server {
	t.Helper()
	srv := stub.New("shell-test-secret")
	require.NoError(t, srv.SeedAdmin("admin", "letmein"))
	require.NoError(t, srv.SeedUser("joe", "", "hunter2"))
	srv.SeedSweet(model.Sweet{Name: "Fudge", Category: "chocolate", Price: 2.50, Quantity: 5})
	return srv
}

func TestShell_AdminRestockFlow(t *testing.T) {
	srv := newSeededStub(t)

	// sign in → restock item 1 by 10 → quit
	script := "1\nadmin\nletmein\nk\n1\n10\nq\n"
	out := runScript(t, srv, script)

	assert.Contains(t, out, "Signed in as admin.")
	assert.Contains(t, out, "[a]dd", "admin menu entries are visible")
	assert.Contains(t, out, "Restocked.")

	sweet, ok := srv.Sweet("1")
	require.True(t, ok)
	assert.Equal(t, 15, sweet.Quantity)
}

func TestShell_StandardUserSeesNoAdminMenu(t *testing.T) {
	srv := newSeededStub(t)

	script := "1\njoe\nhunter2\nq\n"
	out := runScript(t, srv, script)

	assert.Contains(t, out, "Signed in as joe.")
	assert.NotContains(t, out, "[a]dd", "admin entries are hidden from standard users")
	assert.Contains(t, out, "Fudge")
}

func TestShell_AdminActionBlockedForStandardUser(t *testing.T) {
	srv := newSeededStub(t)

	// a standard user typing the hidden admin shortcut is refused locally
	script := "1\njoe\nhunter2\nk\nq\n"
	out := runScript(t, srv, script)

	assert.Contains(t, out, "Admin only.")
	sweet, _ := srv.Sweet("1")
	assert.Equal(t, 5, sweet.Quantity)
}

func TestShell_BadCredentialsStaysOnSignIn(t *testing.T) {
	srv := newSeededStub(t)

	script := "1\nadmin\nwrong\nq\n"
	out := runScript(t, srv, script)

	assert.Contains(t, out, "Error: invalid credentials")
	// Still at the unauthenticated entry point afterwards.
	assert.GreaterOrEqual(t, strings.Count(out, "== Sweet Shop =="), 2)
}

func TestShell_PurchaseOverStockShowsServerMessage(t *testing.T) {
	srv := newSeededStub(t)

	script := "1\njoe\nhunter2\np\n1\n100\nq\n"
	out := runScript(t, srv, script)

	assert.Contains(t, out, "insufficient stock for Fudge: requested 100, available 5")
	assert.NotContains(t, out, "Purchased.")
}

func TestShell_ExpiredSessionFallsBackToSignIn(t *testing.T) {
	srv := newSeededStub(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	// Persist a token the collaborator will reject: well-formed, wrong
	// signing secret. Restore accepts it (no client-side verification),
	// the first request comes back 401 and tears the session down.
	other := stub.New("different-secret")
	require.NoError(t, other.SeedUser("ghost", "", "pw"))
	otherTS := httptest.NewServer(other.Handler())
	t.Cleanup(otherTS.Close)

	bootstrapSess := session.New(session.NewMemoryStorage())
	bootstrap := api.New(config.Config{BaseURL: otherTS.URL + "/api"}, bootstrapSess)
	resp, err := bootstrap.Login(context.Background(), "ghost", "pw")
	require.NoError(t, err)

	storage := session.NewMemoryStorage()
	require.NoError(t, storage.Save(session.State{Token: resp.Token}))

	sess := session.New(storage)
	client := api.New(config.Config{BaseURL: ts.URL + "/api"}, sess)
	cat := catalog.New(client)

	var out bytes.Buffer
	// the fetch-on-mount after restore triggers the 401
	script := "1\njoe\nhunter2\nq\n"
	shell := New(sess, client, cat, strings.NewReader(script), &out)
	require.NoError(t, shell.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Session expired. Please sign in again.")
	assert.Contains(t, text, "== Sweet Shop ==", "unauthenticated entry point is shown after any 401")
	assert.Contains(t, text, "Signed in as joe.")
}

func TestShell_EOFQuitsCleanly(t *testing.T) {
	srv := newSeededStub(t)
	out := runScript(t, srv, "")
	assert.Contains(t, out, "== Sweet Shop ==")
}
