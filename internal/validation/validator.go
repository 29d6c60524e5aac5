package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexPattern       = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	shareNamePattern = regexp.MustCompile(`\.p(\d{1,3})\.share$`)
)

// FileSpec is one parsed transform argument of the form [point][+|-][file]:
// a decimal point (0 when omitted), '-' binding an input file or '+' binding
// an output file, and the file path.
type FileSpec struct {
	Point byte
	Input bool
	Path  string
}

// ParseFileSpec parses a transform argument. Leading digits are consumed
// greedily as the point value; the first non-digit must be '+' or '-'.
func ParseFileSpec(arg string) (FileSpec, error) {
	i := 0
	point := 0
	for i < len(arg) && arg[i] >= '0' && arg[i] <= '9' {
		point = point*10 + int(arg[i]-'0')
		if point >= 256 {
			return FileSpec{}, fmt.Errorf("point value too large in %q", arg)
		}
		i++
	}

	if i >= len(arg) || (arg[i] != '+' && arg[i] != '-') {
		return FileSpec{}, fmt.Errorf("bad argument syntax %q: expected [point][+|-][file]", arg)
	}

	spec := FileSpec{
		Point: byte(point),
		Input: arg[i] == '-',
		Path:  arg[i+1:],
	}
	if spec.Path == "" {
		return FileSpec{}, fmt.Errorf("missing file name in %q", arg)
	}

	return spec, nil
}

// ParseShareRef resolves a combine argument to a share point and path.
// Accepted forms: "point:path", or a bare path whose name carries the
// ".p<point>.share" suffix written by split.
func ParseShareRef(arg string) (byte, string, error) {
	if idx := strings.Index(arg, ":"); idx >= 0 {
		point, err := ParsePoint(arg[:idx])
		if err != nil {
			return 0, "", fmt.Errorf("invalid share reference %q: %w", arg, err)
		}
		path := arg[idx+1:]
		if path == "" {
			return 0, "", fmt.Errorf("missing file name in %q", arg)
		}
		return point, path, nil
	}

	m := shareNamePattern.FindStringSubmatch(arg)
	if m == nil {
		return 0, "", fmt.Errorf("cannot infer share point from %q: use point:file or a .p<point>.share name", arg)
	}
	point, err := ParsePoint(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("invalid share file name %q: %w", arg, err)
	}
	return point, arg, nil
}

// ParsePoint parses a decimal field point in 0..255.
func ParsePoint(s string) (byte, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid point %q", s)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("point %d out of range 0..255", v)
	}
	return byte(v), nil
}

// CheckDuplicatePoints rejects a point list containing repeats.
func CheckDuplicatePoints(points []byte) error {
	var seen [256]bool
	for _, p := range points {
		if seen[p] {
			return fmt.Errorf("duplicate input point %d", p)
		}
		seen[p] = true
	}
	return nil
}

// ValidateHex checks that input is a non-empty, even-length hex string.
func ValidateHex(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}
