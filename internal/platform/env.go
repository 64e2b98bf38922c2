// SPDX-License-Identifier: MIT
package platform

import "lumin/pkg/cstr"

// MinEnvBuffer is the smallest destination Get accepts.
const MinEnvBuffer = 64

// SystemEnv reads the process environment.
type SystemEnv struct{}

// Get copies the variable's value into dst, NUL-terminated and truncated to
// fit. It reports false when the variable is unset, name is empty or dst is
// shorter than MinEnvBuffer.
func (SystemEnv) Get(name string, dst []byte) (int, bool) {
	return boundedGet(getenv, name, dst)
}

// MapEnv is an in-memory environment.
type MapEnv map[string]string

func (m MapEnv) Get(name string, dst []byte) (int, bool) {
	return boundedGet(func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}, name, dst)
}

func boundedGet(lookup func(string) (string, bool), name string, dst []byte) (int, bool) {
	if name == "" || len(dst) < MinEnvBuffer {
		return 0, false
	}
	v, ok := lookup(name)
	if !ok {
		return 0, false
	}
	return cstr.Copy(dst, []byte(v), len(dst)), true
}

// LookupString is Get into a scratch buffer, returned as a string. Values
// longer than 255 bytes are truncated.
func LookupString(env EnvLookup, name string) (string, bool) {
	var buf [256]byte
	if _, ok := env.Get(name, buf[:]); !ok {
		return "", false
	}
	return cstr.String(buf[:]), true
}

var (
	_ EnvLookup = SystemEnv{}
	_ EnvLookup = MapEnv(nil)
)
