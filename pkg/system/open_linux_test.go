package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenCommandLinux(t *testing.T) {
	name, args := openCommand("https://example.org/a?b=1&c=2")
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"https://example.org/a?b=1&c=2"}, args)
}
