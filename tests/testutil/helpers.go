// Package testutil builds package fixtures and locates repository files for
// the unit, integration and e2e tests of python-versions.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the repository root for a test package that sits two
// directories below it (internal/<pkg>, tests/e2e, tests/integration).
// The e2e suite runs `go run ./cmd/python-versions` from here.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// RPMFixture returns the path of a committed binary RPM under
// tests/testdata/rpm.
func RPMFixture(t *testing.T, fileName string) string {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "tests", "testdata", "rpm", fileName)
	_, err := os.Stat(path)
	require.NoError(t, err, "missing rpm fixture %s", fileName)
	return path
}

// CopyRPMFixture copies a committed RPM fixture into dir and returns the
// new path.
func CopyRPMFixture(t *testing.T, dir string, fileName string) string {
	t.Helper()
	data, err := os.ReadFile(RPMFixture(t, fileName))
	require.NoError(t, err)
	path := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
