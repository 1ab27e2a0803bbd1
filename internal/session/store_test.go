package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docchat/docchat-cli/internal/model"
)

func TestStore_SaveCurrentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	require.Empty(t, s.Current())

	require.NoError(t, s.Save(model.Credentials{AccessToken: "A", RefreshToken: "R"}))
	require.Equal(t, "A", s.Current())
	require.Equal(t, "R", s.RefreshToken())

	// state survives a reopen
	s2 := Open(dir)
	require.Equal(t, "A", s2.Current())
	require.Equal(t, "R", s2.RefreshToken())
}

func TestStore_LegacyAliasFallback(t *testing.T) {
	dir := t.TempDir()
	// state written by an older client: only the legacy key
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFile), []byte(`{"token":"OLD"}`), 0o600))

	s := Open(dir)
	require.Equal(t, "OLD", s.Current())

	// canonical key wins once present
	require.NoError(t, s.Save(model.Credentials{AccessToken: "NEW", RefreshToken: "R"}))
	require.Equal(t, "NEW", s.Current())
}

func TestStore_ClearWipesTokensAndSelection(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)
	require.NoError(t, s.Save(model.Credentials{AccessToken: "A", RefreshToken: "R"}))
	require.NoError(t, s.SaveSelection(model.Document{ID: 7, Title: "paper"}))

	require.NoError(t, s.Clear())
	require.Empty(t, s.Current())
	require.Empty(t, s.RefreshToken())
	_, ok := s.Selection()
	require.False(t, ok)

	// cleared on disk too
	s2 := Open(dir)
	require.Empty(t, s2.Current())
	_, ok = s2.Selection()
	require.False(t, ok)
}

func TestStore_SelectionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	_, ok := s.Selection()
	require.False(t, ok)

	doc := model.Document{ID: 3, Title: "thesis", Description: "draft"}
	require.NoError(t, s.SaveSelection(doc))

	got, ok := Open(dir).Selection()
	require.True(t, ok)
	require.Equal(t, doc.ID, got.ID)
	require.Equal(t, doc.Title, got.Title)
	require.Equal(t, doc.Description, got.Description)
}

func TestStore_OpenMissingDirIsEmpty(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "does", "not", "exist"))
	require.Empty(t, s.Current())
	// first write creates the directory
	require.NoError(t, s.Save(model.Credentials{AccessToken: "A"}))
	require.Equal(t, "A", s.Current())
}
