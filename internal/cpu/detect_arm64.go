//go:build arm64

package cpu

import (
	"runtime"

	sysc "golang.org/x/sys/cpu"
)

// detectFeaturesImpl detects NEON on arm64 via golang.org/x/sys/cpu.
// HasWide mirrors the reported ASIMD (NEON) bit, which ARMv8 makes
// mandatory; the 8-wide kernel itself is the same unrolled Go loop used
// on every architecture.
func detectFeaturesImpl() Features {
	return Features{
		HasWide:      sysc.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}
