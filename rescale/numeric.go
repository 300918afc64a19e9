package rescale

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/pxshift/value"
)

// IsDecimal reports whether s is a plain decimal literal:
//
//	[+-]? ( digits [ "." digits* ] | "." digits ) ( [eE] [+-]? digits )?
//
// Surrounding whitespace, digit separators, hexadecimal forms and the words
// NaN and Inf are rejected.
func IsDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	mantissa := skipDigits(s, &i)
	if i < len(s) && s[i] == '.' {
		i++
		mantissa += skipDigits(s, &i)
	}
	if mantissa == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if skipDigits(s, &i) == 0 {
			return false
		}
	}

	return i == len(s)
}

func skipDigits(s string, i *int) int {
	start := *i
	for *i < len(s) && s[*i] >= '0' && s[*i] <= '9' {
		*i++
	}

	return *i - start
}

// numericLike returns the float value of v when v is a JSON number or a
// decimal string. Literals beyond the float64 range come back as ±Inf and are
// reported by the caller's finiteness check.
func numericLike(v value.Value) (float64, bool) {
	var (
		f   float64
		err error
	)

	switch v.Kind() {
	case value.KindNumber:
		f, err = v.Float64()
	case value.KindString:
		if !IsDecimal(v.Text()) {
			return 0, false
		}
		f, err = strconv.ParseFloat(v.Text(), 64)
	default:
		return 0, false
	}

	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	return f, true
}

// Factor converts basis points to the multiplicative factor 1 + bps/10000.
func Factor(bps float64) (float64, error) {
	k := 1.0 + bps/10000.0
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return 0, fmt.Errorf("%w: bps=%v", ErrInvalidFactor, bps)
	}

	return k, nil
}

// ParseBasisPoints parses a signed, possibly fractional, decimal bps value.
// Surrounding whitespace is ignored; the literal itself must satisfy IsDecimal.
func ParseBasisPoints(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !IsDecimal(s) {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidFactor, s)
	}

	bps, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFactor, err)
	}

	return bps, nil
}
