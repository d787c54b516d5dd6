package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Line(t *testing.T) {
	var out bytes.Buffer
	p := NewReaderPrompter(strings.NewReader("alice\r\n s3cret \n"), &out)

	id, err := p.Line("ID: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", id)

	pw, err := p.Secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, " s3cret ", pw)

	assert.Equal(t, "ID: Password: ", out.String())
	assert.False(t, p.Interactive())
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewReaderPrompter(strings.NewReader("bob"), &bytes.Buffer{})
	id, err := p.Line("> ")
	require.NoError(t, err)
	assert.Equal(t, "bob", id)

	_, err = p.Line("> ")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestLinesFor(t *testing.T) {
	assert.Equal(t, 1, linesFor(0, 80))
	assert.Equal(t, 1, linesFor(80, 80))
	assert.Equal(t, 2, linesFor(81, 80))
}

func TestClearLines(t *testing.T) {
	var out bytes.Buffer
	clearLines(&out, 10, 80)
	assert.Equal(t, "\r\x1b[2K\x1b[1A\r\x1b[2K", out.String())
}
