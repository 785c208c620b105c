package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// Parse parses a semantic version, accepting an optional "v" prefix.
func Parse(v string) (*semver.Version, error) {
	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid version '%s'", v)
	}

	return parsed, nil
}

// CheckVersionCompatibility checks whether a configuration written for
// configVersion can be loaded by an engine at engineVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build) or the config version
//     is empty, the check is skipped
//   - Major versions must match exactly
//   - The config's minor version must not be newer than the engine's
//
// Examples:
//   - Engine 1.2.0, Config 1.2.0 -> OK (exact match)
//   - Engine 1.3.0, Config 1.2.5 -> OK (older minor)
//   - Engine 1.2.0, Config 1.3.0 -> ERROR (config needs newer engine)
//   - Engine 2.0.0, Config 1.2.0 -> ERROR (major differs)
func CheckVersionCompatibility(engineVersion, configVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if engineVersion == "main" || configVersion == "main" || configVersion == "" {
		return nil
	}

	engineSemver, err := Parse(engineVersion)
	if err != nil {
		return err
	}

	configSemver, err := Parse(configVersion)
	if err != nil {
		return err
	}

	if engineSemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"major version mismatch: engine is %d.x.x but config requires %d.x.x",
			engineSemver.Major(), configSemver.Major())
	}

	if configSemver.Minor() > engineSemver.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"minor version mismatch: engine is %d.%d.x but config requires %d.%d.x",
			engineSemver.Major(), engineSemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	return nil
}
