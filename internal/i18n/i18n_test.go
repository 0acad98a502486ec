package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"en.json":    {Data: []byte(`{"hello":"Hello {name}!","bye":"Bye"}`)},
		"id.json":    {Data: []byte(`{"hello":"Halo {name}!"}`)},
		"README.txt": {Data: []byte("ignored")},
	}
}

func TestGet_FallsBack(t *testing.T) {
	l, err := New(testFS())
	require.NoError(t, err)

	assert.Equal(t, "Halo {name}!", l.Get("id", "hello"))
	assert.Equal(t, "Bye", l.Get("id", "bye"))
	assert.Equal(t, "Bye", l.Get("fr", "bye"))
	assert.Equal(t, "missing_key", l.Get("en", "missing_key"))
	assert.ElementsMatch(t, []string{"en", "id"}, l.Languages())
}

func TestFormat(t *testing.T) {
	l, err := New(testFS())
	require.NoError(t, err)

	assert.Equal(t, "Hello Alice!", l.Format("en", "hello", "name", "Alice"))
	assert.Equal(t, "Bye", l.Format("en", "bye"))
}

func TestNew_BadCatalog(t *testing.T) {
	_, err := New(fstest.MapFS{"en.json": {Data: []byte(`{`)}})
	assert.Error(t, err)
}

func TestEmbeddedCatalogs(t *testing.T) {
	l, err := New(Catalogs)
	require.NoError(t, err)

	en := l.translations["en"]
	require.NotEmpty(t, en)
	for lang, msgs := range l.translations {
		for key := range en {
			_, ok := msgs[key]
			assert.True(t, ok, "%s catalog is missing %q", lang, key)
		}
	}
}
