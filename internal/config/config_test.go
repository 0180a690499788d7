package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
projects:
  - proj-a
  - proj-b
destination:
  project: analytics-proj
  dataset: spanner_metadata
  table: spanner_is_columns
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{"proj-a", "proj-b"}, cfg.Projects)
	require.Equal(t, "analytics-proj", cfg.Destination.Project)
	require.Equal(t, DefaultFlushEvery, cfg.FlushEvery)
}

func TestLoadConfig_ExampleFile(t *testing.T) {
	path := "../../examples/config.yaml"
	if _, err := os.Stat(path); err != nil {
		t.Skip("examples config not present")
	}
	_, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestLoadConfig_NoProjects(t *testing.T) {
	path := writeConfig(t, `
projects: []
destination:
  project: analytics-proj
  dataset: spanner_metadata
  table: spanner_is_columns
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_MissingDestination(t *testing.T) {
	path := writeConfig(t, `
projects: [proj-a]
destination:
  project: analytics-proj
  dataset: spanner_metadata
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_EnvOverridesDestinationProject(t *testing.T) {
	t.Setenv("BQ_PROJECT_ID", "override-proj")
	path := writeConfig(t, `
projects: [proj-a]
destination:
  project: analytics-proj
  dataset: spanner_metadata
  table: spanner_is_columns
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "override-proj", cfg.Destination.Project)
}

func TestLoadConfig_CustomFlushCadence(t *testing.T) {
	path := writeConfig(t, `
projects: [proj-a]
destination:
  project: analytics-proj
  dataset: spanner_metadata
  table: spanner_is_columns
flush_every: 2
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.FlushEvery)
}
