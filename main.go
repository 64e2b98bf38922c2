// SPDX-License-Identifier: MIT
package main

import (
	"os"

	"lumin/cmd"
	applog "lumin/internal/log"
	"lumin/pkg/build"
)

// main stamps build information, runs the command line and maps any error
// to a non-zero exit status. Development builds without -ldflags run with
// default metadata.
func main() {
	if err := build.Initialize(); err != nil {
		applog.Debugf("build metadata incomplete: %v", err)
	}

	err := cmd.Execute(os.Args[1:])
	_ = applog.Sync()
	if err != nil {
		applog.Errorf("%v", err)
		os.Exit(1)
	}
}
