package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	assert.NotEmpty(t, Get())

	Override = "v9.9.9"
	t.Cleanup(func() { Override = "" })
	assert.Equal(t, "v9.9.9", Get())
}
