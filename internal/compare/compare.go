// Package compare orders resolved field values for sorting.
package compare

import (
	"cmp"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"herodex/internal/field"
)

// A Collator keeps scratch buffers, so each goroutine borrows its own.
var collators = sync.Pool{
	New: func() any { return collate.New(language.English) },
}

// Compare returns a negative number when a sorts before b, a positive number
// when after, and zero when they tie.
//
// Missing sorts after everything. Pairs that both carry a leading number
// ("180 cm", 26) compare numerically; everything else compares as text,
// composites by their canonical JSON.
func Compare(a, b field.Value) int {
	switch {
	case a.IsMissing() && b.IsMissing():
		return 0
	case a.IsMissing():
		return 1
	case b.IsMissing():
		return -1
	}

	na, okA := numeric(a)
	nb, okB := numeric(b)
	if okA && okB {
		return cmp.Compare(na, nb)
	}
	return Strings(a.Text(), b.Text())
}

// Strings compares with English collation rules. Case is significant.
func Strings(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

func numeric(v field.Value) (float64, bool) {
	if n, ok := v.Number(); ok {
		return n, true
	}
	return LeadingNumber(v.Text())
}

// LeadingNumber extracts the longest decimal prefix of s after leading
// whitespace, the way "180 cm" reads as 180. ok is false when s does not
// start with a number.
func LeadingNumber(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if neg {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0, false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
