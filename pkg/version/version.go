package version

// Version represents the current version of d1ks
const Version = "0.3.1"

// BuildVersion returns the version string for display
func BuildVersion() string {
	return "d1ks version " + Version
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}
