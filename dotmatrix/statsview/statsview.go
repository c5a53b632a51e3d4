//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// Launch starts the stats server in its own goroutine. An empty address
// uses DefaultAddress.
func Launch(output io.Writer, address string) {
	if address == "" {
		address = DefaultAddress
	}
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(address))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", address, path)
}

func Available() bool {
	return true
}
