// Command contact submits the portfolio contact form from a terminal, going
// through the same validation and submission state machine as the site.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
