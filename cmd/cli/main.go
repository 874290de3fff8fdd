// datetimescan - timestamp extraction and aggregation
//
// datetimescan finds timestamps in arbitrary text and reports counts per
// interval, the time between them, and stretches of continuous activity.
package main

import (
	"os"

	"github.com/ccollicutt/datetimescan/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
