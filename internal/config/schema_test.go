package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordbase/internal/domain/schema"
)

func TestLoadSchema_Default(t *testing.T) {
	s, err := LoadSchema("")
	require.NoError(t, err)
	assert.Equal(t, "id", s.IDField())
	assert.True(t, s.IsSearchField("name"))
}

func TestLoadSchema_FromYAML(t *testing.T) {
	content := `
fields:
  - name: id
    kind: identifier
    label: ID
  - name: title
    kind: text
    label: Заголовок
    required: true
  - name: status
    kind: select
    label: Статус
    options: ["open", "closed"]
search_fields: ["title", "status"]
`
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := LoadSchema(path)
	require.NoError(t, err)

	assert.Equal(t, "id", s.IDField())
	assert.True(t, s.IsSearchField("title"))

	fd, ok := s.Field("status")
	require.True(t, ok)
	assert.Equal(t, schema.KindSelect, fd.Kind)
	assert.Equal(t, []string{"open", "closed"}, fd.Options)

	fd, ok = s.Field("title")
	require.True(t, ok)
	assert.True(t, fd.Required)
}

func TestLoadSchema_InvalidSchema(t *testing.T) {
	content := `
fields:
  - name: title
    kind: text
search_fields: []
`
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	// Нет поля-идентификатора.
	_, err := LoadSchema(path)
	assert.ErrorIs(t, err, schema.ErrInvalidSchema)
}

func TestLoadSchema_MissingFile(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
