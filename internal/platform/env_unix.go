//go:build unix

// SPDX-License-Identifier: MIT
package platform

import "golang.org/x/sys/unix"

func getenv(name string) (string, bool) { return unix.Getenv(name) }
