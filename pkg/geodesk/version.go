package geodesk

// Version and Build are set by ldflags during release builds.
var (
	Version = "v0.1.0+dev"
	Build   = "n/a"
)
