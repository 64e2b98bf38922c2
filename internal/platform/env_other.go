//go:build !unix && !windows

// SPDX-License-Identifier: MIT
package platform

import "os"

func getenv(name string) (string, bool) { return os.LookupEnv(name) }
