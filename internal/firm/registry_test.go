package firm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "firms.json")
	data := `{"firms":[{"firm_id":"acme","firm_name":"Acme Distribution","region":"north","features":{"bulk_import":true}}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	registry, err := firm.LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, registry.Exists("acme"))
	assert.False(t, registry.Exists("unknown"))
	assert.True(t, registry.HasFeature("acme", "bulk_import"))
	assert.False(t, registry.HasFeature("acme", "payroll"))
	assert.Len(t, registry.All(), 1)

	f := registry.Get("acme")
	require.NotNil(t, f)
	assert.Equal(t, "Acme Distribution", f.FirmName)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := firm.LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
