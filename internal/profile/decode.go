package profile

import (
	"errors"
	"strconv"
	"strings"
)

var errEmptyCode = errors.New("empty value")

// DecodeCode converts a type value cell to an integer. Base 10 is tried
// first and base 16 second, with or without a 0x prefix. "10" therefore
// decodes to ten even where the sheet meant sixteen.
func DecodeCode(text string) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, errEmptyCode
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}

	return parseHex(s)
}

func parseHex(s string) (int64, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}

	// ParseInt would accept a second sign here.
	if s == "" || s[0] == '-' || s[0] == '+' {
		return 0, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrSyntax}
	}

	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

// SplitList turns a comma-separated cell into its items. Line breaks are
// removed first; items are not trimmed.
func SplitList(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\n", ""), ",")
}
