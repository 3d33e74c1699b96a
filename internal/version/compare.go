package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// CheckCompatibility checks whether data written under storedVersion can be read
// by code at currentVersion. Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Current 1.2.0, Stored 1.2.0 -> OK (exact match)
//   - Current 1.2.1, Stored 1.2.0 -> OK (patch differs)
//   - Current 1.3.0, Stored 1.2.0 -> ERROR (minor differs)
//   - Current 2.0.0, Stored 1.2.0 -> ERROR (major differs)
//   - Current main, Stored 1.2.0 -> OK (dev build, skip check)
func CheckCompatibility(currentVersion, storedVersion string) error {
	currentVersion = strings.TrimPrefix(currentVersion, "v")
	storedVersion = strings.TrimPrefix(storedVersion, "v")

	if currentVersion == "main" || storedVersion == "main" {
		return nil
	}

	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidInput, err, "invalid current version '%s'", currentVersion)
	}

	stored, err := semver.NewVersion(storedVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidInput, err, "invalid stored version '%s'", storedVersion)
	}

	if current.Major() != stored.Major() {
		return errors.Newf(errors.ErrCodeCacheMalformed, "major version mismatch: current is %d.x.x but data was written by %d.x.x",
			current.Major(), stored.Major())
	}

	if current.Minor() != stored.Minor() {
		return errors.Newf(errors.ErrCodeCacheMalformed, "minor version mismatch: current is %d.%d.x but data was written by %d.%d.x",
			current.Major(), current.Minor(), stored.Major(), stored.Minor())
	}

	return nil
}

// CheckSchema checks a stored envelope version against SchemaVersion.
func CheckSchema(storedVersion string) error {
	return CheckCompatibility(SchemaVersion, storedVersion)
}
