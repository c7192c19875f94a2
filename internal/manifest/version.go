package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"

	ferrors "github.com/modforge-labs/modforge/internal/errors"
)

// BumpPart names the semver component to increment.
type BumpPart string

const (
	BumpMajor BumpPart = "major"
	BumpMinor BumpPart = "minor"
	BumpPatch BumpPart = "patch"
)

// ParseBumpPart validates a --bump-version value.
func ParseBumpPart(s string) (BumpPart, error) {
	switch p := BumpPart(s); p {
	case BumpMajor, BumpMinor, BumpPatch:
		return p, nil
	default:
		return "", ferrors.ConfigError(fmt.Sprintf("version bump must be 'major', 'minor' or 'patch', got %q", s)).Build()
	}
}

// BumpVersion increments VersionName by part and, when the manifest carries
// an integer Version, increments it by one. It returns the new VersionName.
func (d *Document) BumpVersion(part BumpPart) (string, error) {
	current, ok := d.root.String(KeyVersionName)
	if !ok {
		return "", ferrors.SchemaError(fmt.Sprintf("plugin manifest has no string %q to bump", KeyVersionName)).Build()
	}

	v, err := semver.NewVersion(current)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategorySchema,
			fmt.Sprintf("plugin manifest %q %q is not a semantic version", KeyVersionName, current)).Build()
	}

	var next semver.Version
	switch part {
	case BumpMajor:
		next = v.IncMajor()
	case BumpMinor:
		next = v.IncMinor()
	case BumpPatch:
		next = v.IncPatch()
	default:
		return "", ferrors.ConfigError(fmt.Sprintf("unknown version bump %q", part)).Build()
	}

	if raw, ok := d.root.Raw(KeyVersion); ok {
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", ferrors.WrapError(err, ferrors.CategorySchema,
				fmt.Sprintf("plugin manifest %q must be an integer", KeyVersion)).Build()
		}
		d.root.mustSet(KeyVersion, n+1)
	}

	d.root.mustSet(KeyVersionName, next.String())
	return next.String(), nil
}
