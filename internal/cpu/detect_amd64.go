//go:build amd64

package cpu

import (
	"runtime"

	sysc "golang.org/x/sys/cpu"
)

// detectFeaturesImpl detects AVX2 on amd64 via golang.org/x/sys/cpu.
// AVX2 processes 8 float32 lanes per instruction, matching the 8-wide
// kernel width used throughout internal/simdmath.
func detectFeaturesImpl() Features {
	return Features{
		HasWide:      sysc.X86.HasAVX2,
		Architecture: runtime.GOARCH,
	}
}
