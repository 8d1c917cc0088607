package storage

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "CREATE TABLE a ();", want: "CREATE TABLE a ();"},
		{name: "up only", content: "-- +migrate Up\nCREATE TABLE a ();", want: "\nCREATE TABLE a ();"},
		{
			name:    "up and down",
			content: "-- +migrate Up\nCREATE TABLE a ();\n-- +migrate Down\nDROP TABLE a;",
			want:    "\nCREATE TABLE a ();\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractUpMigration(tt.content))
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(Migrations(), ".")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "001_registry.sql", entries[0].Name())

	content, err := fs.ReadFile(Migrations(), "001_registry.sql")
	require.NoError(t, err)
	up := ExtractUpMigration(string(content))
	assert.Contains(t, up, "registry_counter")
	assert.NotContains(t, up, "DROP TABLE")
	assert.True(t, strings.Contains(up, "ON CONFLICT (id) DO NOTHING"), "counter row is seeded idempotently")
}
