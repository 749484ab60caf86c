// pdbdiff - PeeringDB network comparison tool
//
// pdbdiff compares the facility and internet exchange memberships of two
// autonomous systems and reports what is unique to each and what they share.
package main

import (
	"os"

	"github.com/ccollicutt/pdbdiff/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
