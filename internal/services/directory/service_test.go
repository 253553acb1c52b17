package directory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealbox/internal/domain"
	"sealbox/internal/services/directory"
	"sealbox/internal/store"
)

func newDirectory(t *testing.T) (*directory.Service, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.OpenServer(dir)
	require.NoError(t, err)
	return directory.New(st), dir
}

func TestRegister_Succeeds_ExactlyOnce(t *testing.T) {
	svc, _ := newDirectory(t)

	id, err := svc.Register("alice", "pk-alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.NotEmpty(t, id.CreatedAt)

	_, err = svc.Register("alice", "pk-other")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_RejectsBadUsernames(t *testing.T) {
	svc, _ := newDirectory(t)

	for _, username := range []string{
		"",
		"a",                 // too short
		"abcdefghijklmnopq", // 17 chars
		"1alice",            // leading digit
		"_alice",            // leading symbol
		"al ice",
		"al-ice",
		"ali©e",
	} {
		_, err := svc.Register(username, "pk")
		assert.ErrorIs(t, err, domain.ErrValidation, "username %q", username)
	}

	_, err := svc.Register("Ab", "pk")
	assert.NoError(t, err, "2-char username is the lower bound")
	_, err = svc.Register("Abcdefghijklmnop", "pk")
	assert.NoError(t, err, "16-char username is the upper bound")
}

func TestRegister_RequiresPublicKey(t *testing.T) {
	svc, _ := newDirectory(t)
	_, err := svc.Register("alice", "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegister_IsCaseSensitive(t *testing.T) {
	svc, _ := newDirectory(t)

	_, err := svc.Register("alice", "pk1")
	require.NoError(t, err)
	_, err = svc.Register("Alice", "pk2")
	require.NoError(t, err)

	id, err := svc.Lookup("Alice")
	require.NoError(t, err)
	assert.Equal(t, "pk2", id.PublicKey)
}

func TestLookup_UnknownUser(t *testing.T) {
	svc, _ := newDirectory(t)
	_, err := svc.Lookup("nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_SurvivesRestart(t *testing.T) {
	svc, dir := newDirectory(t)
	_, err := svc.Register("alice", "pk-alice")
	require.NoError(t, err)

	st, err := store.OpenServer(dir)
	require.NoError(t, err)
	svc2 := directory.New(st)

	id, err := svc2.Lookup("alice")
	require.NoError(t, err)
	assert.Equal(t, "pk-alice", id.PublicKey)
}
