package addressbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenAddress = "0x2fd4503a9b855a852272945df53d7173297c1469cceda31048b85118364b09a3"

func writeBook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addresses.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_LookupToken(t *testing.T) {
	path := writeBook(t, `{"token": "`+tokenAddress+`", "Escrow": "0x05"}`)
	book, err := Load(path)
	require.NoError(t, err)

	addr, err := book.Lookup(TokenContract)
	require.NoError(t, err)
	assert.True(t, addr.Equal(pxe.MustAddress(tokenAddress)))

	escrow, err := book.Lookup("ESCROW")
	require.NoError(t, err)
	assert.True(t, escrow.Equal(pxe.MustAddress("0x05")))

	assert.Equal(t, []string{"escrow", "token"}, book.Names())
	assert.Equal(t, path, book.Path())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(writeBook(t, `{"token": `))
	assert.Error(t, err)
}

func TestLookup_UnknownName(t *testing.T) {
	book := FromMap(map[string]string{"token": tokenAddress})
	_, err := book.Lookup("bridge")
	assert.ErrorIs(t, err, ErrUnknownContract)
}

func TestLookup_MalformedAddress(t *testing.T) {
	book := FromMap(map[string]string{"token": "0xnothex", "other": "0x01"})
	_, err := book.Lookup("token")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownContract)

	_, err = book.Lookup("other")
	assert.NoError(t, err)
}
