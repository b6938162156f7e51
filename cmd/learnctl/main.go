// Command learnctl runs operator tasks against the learning path database
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
