// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package edsp

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a Debian package version of the form
// [epoch:]upstream-version[-revision].
//
// The original text is retained verbatim, so String always reproduces the
// exact input the version was parsed from. The epoch defaults to 0 when
// absent, which makes "1.1+git2021" and "0:1.1+git2021" compare equal even
// though their retained texts differ.
type Version struct {
	epoch    int
	upstream string
	revision string
	original string
}

// EpochError is returned by ParseVersion when the text before the first ':'
// is not a non-negative integer.
type EpochError struct {
	// Text is the offending epoch text.
	Text string
	// Err is the underlying integer parse error.
	Err error
}

// Error implements the error interface
func (e *EpochError) Error() string {
	return fmt.Sprintf("invalid epoch %q: %v", e.Text, e.Err)
}

// Unwrap returns the underlying integer parse error.
func (e *EpochError) Unwrap() error {
	return e.Err
}

// ParseVersion parses a raw Debian version string.
//
// The epoch is the text before the first ':' (0 if there is no ':'), the
// revision is the text after the last '-' of the remainder (empty if there is
// no '-'), and the upstream version is everything in between. A malformed
// epoch is the only rejected input; any other string parses successfully,
// including ones with an empty upstream part.
func ParseVersion(s string) (Version, error) {
	v := Version{original: s}

	rest := s
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		epoch, err := strconv.ParseUint(rest[:i], 10, 63)
		if err != nil {
			return Version{}, &EpochError{Text: rest[:i], Err: err}
		}
		v.epoch = int(epoch)
		rest = rest[i+1:]
	}

	if i := strings.LastIndexByte(rest, '-'); i >= 0 {
		v.upstream = rest[:i]
		v.revision = rest[i+1:]
	} else {
		v.upstream = rest
	}

	return v, nil
}

// MustParseVersion is like ParseVersion but panics on a malformed epoch.
// Intended for tests and static version literals.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Epoch returns the epoch component (0 when the original text had none).
func (v Version) Epoch() int {
	return v.epoch
}

// Upstream returns the upstream version component.
func (v Version) Upstream() string {
	return v.upstream
}

// Revision returns the revision component, or "" when the original text had
// no revision.
func (v Version) Revision() string {
	return v.revision
}

// String returns the original version text, verbatim.
func (v Version) String() string {
	return v.original
}

// Equal reports whether the two versions have equal epoch, upstream and
// revision components. The retained original text does not participate: an
// implicit epoch 0 equals an explicit "0:" prefix.
func (v Version) Equal(other Version) bool {
	return v.epoch == other.epoch &&
		v.upstream == other.upstream &&
		v.revision == other.revision
}

// Compare returns a negative value if v sorts before other, zero if they are
// equal, and a positive value if v sorts after other, following Debian's
// version comparison semantics: epochs are compared as integers, then the
// upstream versions and finally the revisions are compared with the
// alternating non-digit/digit run algorithm (see compareFragment).
func (v Version) Compare(other Version) int {
	if v.epoch != other.epoch {
		if v.epoch < other.epoch {
			return -1
		}
		return 1
	}
	if c := compareFragment(v.upstream, other.upstream); c != 0 {
		return c
	}
	return compareFragment(v.revision, other.revision)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.original), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// compareFragment compares an upstream version or revision fragment. The
// fragment is treated as an alternating sequence of a non-digit run followed
// by a digit run, starting with a (possibly empty) non-digit run.
func compareFragment(a, b string) int {
	for a != "" || b != "" {
		if c := compareNonDigits(&a, &b); c != 0 {
			return c
		}
		if c := compareDigits(&a, &b); c != 0 {
			return c
		}
	}
	return 0
}

// nonDigitHead returns the first byte of s unless s is empty or starts with
// a digit, in which case the current non-digit run is exhausted.
func nonDigitHead(s string) (byte, bool) {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return 0, false
	}
	return s[0], true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// compareNonDigits consumes the leading non-digit runs of *a and *b in
// lockstep and compares them. '~' sorts before everything including the end
// of a run; end of run sorts before any other byte; letters sort before
// non-letters; otherwise raw byte values decide. On a tie both strings are
// advanced past the compared run.
func compareNonDigits(a, b *string) int {
	sa, sb := *a, *b
	for len(sa) > 0 || len(sb) > 0 {
		ca, okA := nonDigitHead(sa)
		cb, okB := nonDigitHead(sb)
		switch {
		case !okA && !okB:
			*a, *b = sa, sb
			return 0
		case okA && okB && ca == cb:
			// equal so far, keep scanning
		case okA && ca == '~':
			return -1
		case okB && cb == '~':
			return 1
		case okA && !okB:
			return 1
		case !okA && okB:
			return -1
		default:
			if aAlpha, bAlpha := isAlpha(ca), isAlpha(cb); aAlpha != bAlpha {
				if aAlpha {
					return -1
				}
				return 1
			}
			if ca < cb {
				return -1
			}
			return 1
		}
		sa, sb = sa[1:], sb[1:]
	}
	*a, *b = sa, sb
	return 0
}

// digitRun splits s into its leading run of ASCII digits and the remainder.
func digitRun(s string) (run, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits consumes the leading digit runs of *a and *b and compares
// them as unbounded naturals. An absent run counts as zero. Stripping leading
// zeros and comparing lengths before bytes keeps the comparison exact for
// digit runs of any length.
func compareDigits(a, b *string) int {
	da, ra := digitRun(*a)
	db, rb := digitRun(*b)
	*a, *b = ra, rb

	da = strings.TrimLeft(da, "0")
	db = strings.TrimLeft(db, "0")
	if len(da) != len(db) {
		if len(da) < len(db) {
			return -1
		}
		return 1
	}
	return strings.Compare(da, db)
}
