// Package version exposes build metadata stamped at link time.
package version

import (
	"fmt"
	"runtime"
)

// Populated via -ldflags at build time, e.g.:
//
//	-X github.com/taiyousan15/ocrqc/version.GitRelease=v0.2.0
var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"
)

// GoInfo reports the Go runtime the binary was built with.
var GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
