// Countdown CLI - decodes solver programs into readable arithmetic
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
