package assets

import (
	"fmt"
	"regexp"
)

// MaxAssetNameLength bounds style and layout names.
const MaxAssetNameLength = 64

// Letters, digits, '-' and '_', starting with a letter or digit
var assetName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName reports whether name can be used as a style or layout
// name. Anything that could name another directory or extension is refused.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, MaxAssetNameLength)
	case !assetName.MatchString(name):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
