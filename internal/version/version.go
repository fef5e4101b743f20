// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the tracecore project.
// Copyright 2026 tracecore authors.

// Package version holds the module's own release identifier, reported in
// the InstrumentationLibrary attached to every span this SDK produces.
package version

import "regexp"

// Tag specifies the current release tag. It is bumped on every release and
// read by the default InstrumentationLibrary.
const Tag = "v0.1.0"

var semverRe = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

// Valid reports whether Tag is well-formed semver with a leading "v".
func Valid() bool {
	return semverRe.MatchString(Tag)
}
