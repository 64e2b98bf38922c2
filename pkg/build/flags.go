// SPDX-License-Identifier: MIT
//
// Package build carries metadata stamped into the binary at link time:
//
//	go build -ldflags "-X lumin/pkg/build.buildName=lumin \
//	  -X lumin/pkg/build.buildVersion=0.3.0 \
//	  -X lumin/pkg/build.buildCommit=$(git rev-parse --short HEAD) \
//	  -X lumin/pkg/build.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds carry the defaults below.
package build

import "errors"

// Info is the metadata reported by the CLI.
type Info struct {
	Name        string
	Description string
	Time        string
	Commit      string
	Version     string
}

const (
	defaultName        = "lumin"
	defaultDescription = "Bounded formatting and native-interop primitives"
	unknown            = "unknown"
)

var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildInfo    = defaults()
)

func defaults() *Info {
	return &Info{
		Name:        defaultName,
		Description: defaultDescription,
		Time:        unknown,
		Commit:      unknown,
		Version:     unknown,
	}
}

// Initialize copies the linker-provided values into the Info returned by
// Get. Every value that was provided is applied; the error lists those
// that were missing, leaving their defaults in place.
func Initialize() error {
	var errs []error
	for _, f := range []struct {
		name string
		src  string
		dst  *string
	}{
		{"BuildName", buildName, &buildInfo.Name},
		{"BuildTime", buildTime, &buildInfo.Time},
		{"BuildCommit", buildCommit, &buildInfo.Commit},
		{"BuildVersion", buildVersion, &buildInfo.Version},
	} {
		if f.src == "" {
			errs = append(errs, errors.New(f.name+" is required"))
			continue
		}
		*f.dst = f.src
	}
	return errors.Join(errs...)
}

// Get returns the current build information.
func Get() *Info {
	return buildInfo
}
