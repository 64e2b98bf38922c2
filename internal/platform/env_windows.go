//go:build windows

// SPDX-License-Identifier: MIT
package platform

import "golang.org/x/sys/windows"

func getenv(name string) (string, bool) { return windows.Getenv(name) }
