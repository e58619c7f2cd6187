package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyforecast/internal/shared/testutil"
)

func TestValidateDatasetFile(t *testing.T) {
	logger, _ := testutil.NewTestLogger()
	v := NewFileValidator(logger)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.ValidateDatasetFile(testutil.WriteFile(t, "energy.csv", testutil.LinearCSV)))
	})

	t.Run("missing", func(t *testing.T) {
		err := v.ValidateDatasetFile(filepath.Join(t.TempDir(), "nope.csv"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("directory", func(t *testing.T) {
		err := v.ValidateDatasetFile(t.TempDir())
		assert.ErrorContains(t, err, "is a directory")
	})

	t.Run("empty", func(t *testing.T) {
		err := v.ValidateDatasetFile(testutil.WriteFile(t, "empty.csv", ""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}

func TestValidateOutputFile(t *testing.T) {
	v := NewFileValidator(nil)

	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	require.NoError(t, v.ValidateOutputFile(path))
	assert.DirExists(t, filepath.Dir(path))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorContains(t, v.ValidateOutputFile(t.TempDir()), "is a directory")
}
