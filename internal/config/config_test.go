package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examdesk/seatmap/pkg/core/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seatmap_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "alunos_1", cfg.StudentTabs.Group1)
	assert.Equal(t, "alunos_2", cfg.StudentTabs.Group2)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
studentTabs:
  group1: students_a
  group2: students_b
blockedSeats:
  "Room 1":
    - "1,1"
    - "3, 2"
server:
  addr: ":9090"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "students_a", cfg.StudentTabs.Group1)
	assert.Equal(t, "students_b", cfg.StudentTabs.Group2)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "name", cfg.Columns.Name, "Unset sections keep their defaults")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsEmptyTabName(t *testing.T) {
	cfg := Default()
	cfg.StudentTabs.Group2 = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestValidate_RejectsMalformedBlockedSeat(t *testing.T) {
	tests := []struct {
		name string
		pos  string
	}{
		{"not a pair", "3"},
		{"non numeric", "a,b"},
		{"zero based", "0,1"},
		{"negative", "-1,2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.BlockedSeats = map[string][]string{"Room 1": {tc.pos}}

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid blocked seat")
		})
	}
}

func TestBlockedSeatsFor_ConvertsToZeroBased(t *testing.T) {
	cfg := Default()
	cfg.BlockedSeats = map[string][]string{
		"Room 1": {"1,1", "3, 2"},
	}
	require.NoError(t, Validate(cfg))

	blocked := cfg.BlockedSeatsFor("Room 1")
	assert.Equal(t, map[model.Seat]bool{
		{Row: 0, Col: 0}: true,
		{Row: 2, Col: 1}: true,
	}, blocked)

	assert.Nil(t, cfg.BlockedSeatsFor("Room 2"), "Rooms without entries have no blocked seats")
}
