// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package version

import (
	gvers "github.com/hashicorp/go-version"
)

type Feature int

const (
	UnknownFeature Feature = iota
	// IncludeStatusInCli adds the "status" field next to "status_code" in
	// JSON formatted CLI errors.
	IncludeStatusInCli
	// SegmentJsonOutput emits the continuation token alongside items in JSON
	// formatted list output.
	SegmentJsonOutput
)

var featureMap map[Feature]gvers.Constraints

// Binary is the version of the running binary, as parsed by go-version.
var Binary *gvers.Version

func init() {
	featureMap = map[Feature]gvers.Constraints{
		IncludeStatusInCli: mustConstraint(">= 0.1.0"),
		SegmentJsonOutput:  mustConstraint(">= 0.1.0"),
	}
	Binary = getBinaryVersion()
}

func mustConstraint(c string) gvers.Constraints {
	constraint, err := gvers.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

func getBinaryVersion() *gvers.Version {
	v, err := gvers.NewVersion(Get().VersionNumber())
	if err != nil {
		return nil
	}
	return v
}

// SupportsFeature returns whether the given version supports the feature. A
// nil version supports nothing.
func SupportsFeature(version *gvers.Version, feature Feature) bool {
	if version == nil {
		return false
	}
	constraint, ok := featureMap[feature]
	if !ok {
		return false
	}
	// Prerelease versions compare below their release, so check against the
	// core version.
	return constraint.Check(version.Core())
}
