package platform

// Identifiers reported by get_platform. The UI layer branches on these exact
// spellings, so they must not change.
const (
	Linux     = "linux"
	MacOS     = "macos"
	IOS       = "ios"
	Windows   = "windows"
	Android   = "android"
	FreeBSD   = "freebsd"
	DragonFly = "dragonfly"
	NetBSD    = "netbsd"
	OpenBSD   = "openbsd"
	Solaris   = "solaris"
	Illumos   = "illumos"
)

// Identifier returns the operating system the binary was built for.
func Identifier() string {
	return osIdentifier
}

// IsMobile reports whether the build target is a mobile OS.
func IsMobile() bool {
	return osIdentifier == Android || osIdentifier == IOS
}
