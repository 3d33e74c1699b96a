package version

// Version is the current version of the service.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/version.Version=1.2.3"
// The value "main" indicates a development build.
var Version = "v0.4.0"

// SchemaVersion is the version of the cache envelope payload layout.
// Bump the minor version when a cached payload changes shape.
const SchemaVersion = "1.2.0"

// GetVersion returns the current version of the service.
func GetVersion() string {
	return Version
}
