package session

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// signToken mints a syntactically valid HS256 token for the given
// claims. The store never verifies signatures, so the secret is
// arbitrary.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestDecodeIdentity_ClaimMapping(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{"sub": "alice", "role": "ROLE_ADMIN", "email": "alice@example.com"})

	id, err := DecodeIdentity(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, model.RoleAdmin, id.Role)
	assert.Equal(t, "alice@example.com", id.Email)
}

func TestDecodeIdentity_RoleDefaultsToUser(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{"sub": "bob"})

	id, err := DecodeIdentity(tok)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, id.Role)
	assert.False(t, id.Role.IsAdmin())
}

func TestDecodeIdentity_UsernameFallback(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{"username": "carol"})

	id, err := DecodeIdentity(tok)
	require.NoError(t, err)
	assert.Equal(t, "carol", id.Username)
}

func TestDecodeIdentity_NoSubject(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{"role": "ROLE_ADMIN"})

	_, err := DecodeIdentity(tok)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeIdentity_Malformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "not.a.jwt"} {
		_, err := DecodeIdentity(raw)
		assert.ErrorIs(t, err, ErrDecode, "token %q", raw)
	}
}

func TestRestore_MalformedTokenClearsStorage(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(State{Token: "not-a-jwt"}))

	store := New(storage)
	store.Restore() // must not panic

	_, ok := store.Identity()
	assert.False(t, ok, "session must be anonymous")

	st, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Token, "bad persisted token must be discarded")
}

func TestRestore_DerivesIdentityFromToken(t *testing.T) {
	storage := NewMemoryStorage()
	tok := signToken(t, jwt.MapClaims{"sub": "alice", "role": "ROLE_ADMIN"})
	require.NoError(t, storage.Save(State{Token: tok}))

	store := New(storage)
	store.Restore()

	id, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, "alice", id.Username)
	assert.True(t, store.IsAdmin())
	assert.Equal(t, tok, store.Token())
}

func TestRestore_CachedIdentityWins(t *testing.T) {
	storage := NewMemoryStorage()
	tok := signToken(t, jwt.MapClaims{"sub": "alice"})
	cached := &model.Identity{ID: "42", Username: "alice", Role: model.RoleAdmin}
	require.NoError(t, storage.Save(State{Token: tok, Identity: cached}))

	store := New(storage)
	store.Restore()

	id, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, "42", id.ID)
	assert.True(t, store.IsAdmin(), "cached role must not be re-derived from claims")
}

func TestLogin_ThenIsAdminReflectsClaims(t *testing.T) {
	store := New(NewMemoryStorage())

	require.NoError(t, store.Login(signToken(t, jwt.MapClaims{"sub": "root", "role": "ROLE_ADMIN"}), nil))
	assert.True(t, store.IsAdmin())

	require.NoError(t, store.Login(signToken(t, jwt.MapClaims{"sub": "joe"}), nil))
	assert.False(t, store.IsAdmin())
}

func TestLogin_SuppliedIdentityUsedAsIs(t *testing.T) {
	store := New(NewMemoryStorage())
	tok := signToken(t, jwt.MapClaims{"sub": "joe"})

	require.NoError(t, store.Login(tok, &model.Identity{Username: "joe", Role: model.RoleAdmin}))
	assert.True(t, store.IsAdmin())
}

func TestLogin_BadTokenLeavesStateUntouched(t *testing.T) {
	store := New(NewMemoryStorage())
	good := signToken(t, jwt.MapClaims{"sub": "alice"})
	require.NoError(t, store.Login(good, nil))

	err := store.Login("garbage", nil)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, good, store.Token(), "failed login must not disturb the session")
}

func TestLogout_ClearsEverythingAndIsIdempotent(t *testing.T) {
	storage := NewMemoryStorage()
	store := New(storage)
	require.NoError(t, store.Login(signToken(t, jwt.MapClaims{"sub": "alice"}), nil))

	store.Logout()
	store.Logout() // second call is a no-op, never a failure

	assert.Empty(t, store.Token())
	assert.False(t, store.IsAdmin())
	_, ok := store.Identity()
	assert.False(t, ok)

	st, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Token)
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs := NewFileStorage(path)

	// Missing file means no session, not an error.
	st, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Token)

	want := State{Token: "tok", Identity: &model.Identity{Username: "alice", Role: model.RoleUser}}
	require.NoError(t, fs.Save(want))

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, want.Token, got.Token)
	require.NotNil(t, got.Identity)
	assert.Equal(t, "alice", got.Identity.Username)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear(), "clearing an absent file succeeds")
	st, err = fs.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Token)
}
