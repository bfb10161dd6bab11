package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetTextOrKeep(t *testing.T) {
	var out bytes.Buffer
	r := rdr("\nnew\n")

	got, err := GetTextOrKeep(r, "Name", "Alice", &out)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got)

	got, err = GetTextOrKeep(r, "Name", "Alice", &out)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
	assert.Contains(t, out.String(), "Name [Alice]")
}

func TestReadLine_CRLF(t *testing.T) {
	got, err := readLine(rdr("users\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "users", got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}
