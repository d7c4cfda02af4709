package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	assert.True(t, r.ContainsStudent("ACHEUK Achraf"))
	assert.False(t, r.ContainsStudent("NOBODY Nobody"))
	assert.Positive(t, r.Size())
}

func TestLoad_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	content := `[{"no":1,"last_name":"DUPONT","first_name":"Jean"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	r, err := Load(path)
	require.NoError(t, err)

	assert.True(t, r.ContainsStudent("DUPONT Jean"))
	assert.False(t, r.ContainsStudent("ACHEUK Achraf"), "override replaces the embedded roster")
	assert.Equal(t, 1, r.Size())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o600))
	_, err = Load(empty)
	assert.Error(t, err)
}

func TestContainsStudent_ExactMatchOnly(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	assert.True(t, r.ContainsStudent("ACHEUK Achraf"))
	assert.False(t, r.ContainsStudent("acheuk achraf"), "membership is case-sensitive")
	assert.False(t, r.ContainsStudent("Achraf ACHEUK"), "order is last name first")
}

func TestContainsCategory(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	for _, c := range Categories {
		assert.True(t, r.ContainsCategory(c))
	}
	assert.False(t, r.ContainsCategory("Complaints"))
	assert.False(t, r.ContainsCategory("technical support"))
}

func TestFindStudent_CaseInsensitive(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	s, ok := r.FindStudent("  acheuk achraf ")
	require.True(t, ok)
	assert.Equal(t, "ACHEUK Achraf", s.FullName())

	_, ok = r.FindStudent("nobody")
	assert.False(t, ok)
}

func TestNames_Sorted(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)

	names := r.Names()
	require.Len(t, names, r.Size())
	assert.IsNonDecreasing(t, names)
}
