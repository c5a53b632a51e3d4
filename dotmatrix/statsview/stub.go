//go:build !statsview

package statsview

import (
	"fmt"
	"io"
)

const DefaultAddress = ""

func Launch(output io.Writer, _ string) {
	fmt.Fprintln(output, "stats server not available, build with -tags statsview")
}

func Available() bool {
	return false
}
