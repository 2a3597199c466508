// File: lixenwraith/appconfig/cmd/appconfig/main.go
// Command appconfig checks, dumps and watches configurations described by an HCL schema.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
