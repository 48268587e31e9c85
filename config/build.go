// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release of WallFE.
const BuildVersion string = "v1.0.0"

// shortRevisionLength is how much of a commit hash is shown.
const shortRevisionLength = 8

type buildInfo struct {
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Revision returns "<date>-<short hash>[+dirty]", or "unknown" outside a VCS build.
func (b *buildInfo) Revision() string {
	if b.VcsRevision == "" {
		return "unknown"
	}

	revision := b.VcsRevision
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}

	date, _, _ := strings.Cut(b.VcsTime, "T")

	s := date + "-" + revision
	if b.VcsModified {
		s += "+dirty"
	}

	return s
}

func (b *buildInfo) load() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			b.VcsRevision = kv.Value
		case "vcs.time":
			b.VcsTime = kv.Value
		case "vcs.modified":
			b.VcsModified = kv.Value == "true"
		}
	}
}
