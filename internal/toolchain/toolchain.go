// Package toolchain resolves the pinned node toolchain directory inside
// an nvm installation.
package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// VersionsDir returns the directory nvm installs node versions under.
func VersionsDir(nvmDir string) string {
	return filepath.Join(nvmDir, "versions", "node")
}

// BinDir returns the bin directory for a node version. The version may
// be given with or without the leading "v" nvm uses for directory names.
func BinDir(nvmDir, version string) string {
	return filepath.Join(VersionsDir(nvmDir), "v"+strings.TrimPrefix(version, "v"), "bin")
}

// Resolve picks the node version to put on the path. An exact pin is
// returned as-is without touching the filesystem. Otherwise spec is
// treated as a version constraint and matched against the versions
// installed under nvmDir, highest match wins.
func Resolve(nvmDir, spec string) (string, error) {
	spec = strings.TrimPrefix(spec, "v")
	if v, err := goversion.NewVersion(spec); err == nil {
		return "v" + v.Original(), nil
	}

	constraint, err := goversion.NewConstraint(spec)
	if err != nil {
		return "", fmt.Errorf("node version %q is neither a version nor a constraint: %w", spec, err)
	}

	installed, err := installedVersions(nvmDir)
	if err != nil {
		return "", err
	}

	var best *goversion.Version
	for _, v := range installed {
		if !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return "", fmt.Errorf("no installed node version matches %q under %s", spec, VersionsDir(nvmDir))
	}
	return "v" + best.Original(), nil
}

func installedVersions(nvmDir string) ([]*goversion.Version, error) {
	entries, err := os.ReadDir(VersionsDir(nvmDir))
	if err != nil {
		return nil, fmt.Errorf("listing installed node versions: %w", err)
	}

	var versions []*goversion.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := goversion.NewVersion(strings.TrimPrefix(e.Name(), "v"))
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	return versions, nil
}
