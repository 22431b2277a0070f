package testutil

import "testing"

// SetupTestHome points $HOME at a temp directory so tests that touch
// ~/.gwo.yaml never read or clobber the developer's real credentials.
// The directory is removed when the test ends.
func SetupTestHome(t *testing.T) string {
	t.Helper()

	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("USERPROFILE", tmpHome) // Windows
	return tmpHome
}
