package constant

// Platform identifiers compared against runtime.GOOS.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
	FreeBSD = "freebsd"
)
