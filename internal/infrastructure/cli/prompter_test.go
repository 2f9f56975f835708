package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterAsksAndTrims(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  golang  \n"), &out)

	value, err := p.Ask("owner", "repository owner/organization")
	require.NoError(t, err)
	assert.Equal(t, "golang", value)
	assert.Contains(t, out.String(), "Please provide the owner (repository owner/organization): ")
}

func TestPrompterLastLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("go"), &bytes.Buffer{})

	value, err := p.Ask("repo", "repository name")
	require.NoError(t, err)
	assert.Equal(t, "go", value)
}

func TestPrompterEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Ask("repo", "repository name")
	assert.Error(t, err)
}
