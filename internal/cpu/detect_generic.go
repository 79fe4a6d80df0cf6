//go:build !amd64 && !arm64

package cpu

import "runtime"

// detectFeaturesImpl is the fallback for architectures without a
// dedicated 8-wide kernel; only the scalar path is available.
func detectFeaturesImpl() Features {
	return Features{Architecture: runtime.GOARCH}
}
