//go:build !statsview

package statsview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStubLaunch(t *testing.T) {
	var out bytes.Buffer
	Launch(&out, "localhost:0")

	assert.False(t, Available())
	assert.Contains(t, out.String(), "not available")
}
