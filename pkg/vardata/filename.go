package vardata

import (
	"strconv"
	"strings"
)

// RowPlaceholder is replaced by the 1-based data row index in filename templates.
const RowPlaceholder = "$n"

const forbiddenFilenameChars = `<>:"/\|?*`

// FormatFilename expands every RowPlaceholder in template with row and
// validates the result as a single file name. Templates without the
// placeholder come back unchanged (after validation).
func FormatFilename(template string, row int) (string, error) {
	name := strings.ReplaceAll(template, RowPlaceholder, strconv.Itoa(row))
	if err := ValidateFilename(name); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateFilename rejects names that are not portable file names: empty
// names, control characters, reserved punctuation, and names that start or
// end with a dot or a space.
func ValidateFilename(name string) error {
	if name == "" {
		return &FilenameError{Name: name, Reason: "empty name"}
	}
	for _, r := range name {
		if r < 32 {
			return &FilenameError{Name: name, Reason: "contains a control character"}
		}
		if strings.ContainsRune(forbiddenFilenameChars, r) {
			return &FilenameError{Name: name, Reason: "contains forbidden character " + strconv.QuoteRune(r)}
		}
	}
	switch {
	case name[0] == '.' || name[0] == ' ':
		return &FilenameError{Name: name, Reason: "starts with a dot or space"}
	case name[len(name)-1] == '.' || name[len(name)-1] == ' ':
		return &FilenameError{Name: name, Reason: "ends with a dot or space"}
	}
	return nil
}
