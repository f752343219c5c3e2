//go:build !linux && !darwin && !windows

package platform

import "runtime"

// BSD and Solaris family GOOS values already use the identifier spelling.
const osIdentifier = runtime.GOOS
