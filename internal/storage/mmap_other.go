//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos || windows)

package storage

// Default returns the preferred Opener for this platform.
func Default() Opener { return ReadOpener{} }
