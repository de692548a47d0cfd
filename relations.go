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
	"strings"
)

// Relation is the comparator of a version constraint. The five values map
// one-to-one onto the textual operators <<, <=, =, >= and >>.
type Relation int

const (
	// Earlier requires a version strictly earlier than the constraint ("<<").
	Earlier Relation = iota
	// EarlierEqual requires a version earlier than or equal to the
	// constraint ("<=").
	EarlierEqual
	// Equal requires a version equal to the constraint ("=").
	Equal
	// LaterEqual requires a version later than or equal to the
	// constraint (">=").
	LaterEqual
	// Later requires a version strictly later than the constraint (">>").
	Later
)

// String returns the operator token for the relation.
func (r Relation) String() string {
	switch r {
	case Earlier:
		return "<<"
	case EarlierEqual:
		return "<="
	case Equal:
		return "="
	case LaterEqual:
		return ">="
	case Later:
		return ">>"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// parseRelation matches a relation operator at the start of s and returns it
// together with the unconsumed remainder.
func parseRelation(s string) (Relation, string, bool) {
	switch {
	case strings.HasPrefix(s, "<<"):
		return Earlier, s[2:], true
	case strings.HasPrefix(s, "<="):
		return EarlierEqual, s[2:], true
	case strings.HasPrefix(s, ">="):
		return LaterEqual, s[2:], true
	case strings.HasPrefix(s, ">>"):
		return Later, s[2:], true
	case strings.HasPrefix(s, "="):
		return Equal, s[1:], true
	default:
		return 0, s, false
	}
}

// Constraint narrows a VersionSet to the versions satisfying Relation
// against Version.
type Constraint struct {
	Relation Relation
	Version  Version
}

// VersionSet describes a set of versions of one package: either every
// version of the package (nil Constraint) or the versions satisfying the
// constraint.
//
// The textual form is "name" or "name (relation version)"; ParseVersionSet
// and String are exact inverses of each other.
type VersionSet struct {
	// Package is the package name.
	Package string
	// Constraint is the version constraint, or nil for "any version".
	Constraint *Constraint
}

// EmptyPackageNameError is returned when a version set has no package name.
type EmptyPackageNameError struct {
	// Input is the full text the parse started from.
	Input string
}

// Error implements the error interface
func (e *EmptyPackageNameError) Error() string {
	return fmt.Sprintf("error parsing package name: empty package name in %q", e.Input)
}

// BadConstraintError is returned when the parenthesised constraint clause of
// a version set is malformed: missing operator, missing version text,
// unmatched parenthesis or trailing garbage.
type BadConstraintError struct {
	// Input is the full text the parse started from.
	Input string
	// Rest is the unconsumed text at the point the parse diverged.
	Rest string
	// Reason describes what was expected.
	Reason string
}

// Error implements the error interface
func (e *BadConstraintError) Error() string {
	return fmt.Sprintf("error parsing constraint spec: %s at %q in %q", e.Reason, e.Rest, e.Input)
}

// BadVersionError is returned when the version text inside a constraint
// clause fails to parse.
type BadVersionError struct {
	// Input is the full text the parse started from.
	Input string
	// Err is the underlying version parse error.
	Err error
}

// Error implements the error interface
func (e *BadVersionError) Error() string {
	return fmt.Sprintf("error parsing version: %v", e.Err)
}

// Unwrap returns the underlying version parse error.
func (e *BadVersionError) Unwrap() error {
	return e.Err
}

func isLinearSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func skipSpace(s string) string {
	i := 0
	for i < len(s) && isLinearSpace(s[i]) {
		i++
	}
	return s[i:]
}

// ParseVersionSet parses a version set token.
//
// The grammar is a package name (one or more bytes that are neither
// whitespace nor '('), optionally followed by a parenthesised constraint
// "(relation version)". The version text runs up to, but not including, the
// closing parenthesis. Nothing but trailing spaces may follow the clause.
func ParseVersionSet(input string) (VersionSet, error) {
	i := 0
	for i < len(input) && !isSpace(input[i]) && input[i] != '(' {
		i++
	}
	if i == 0 {
		return VersionSet{}, &EmptyPackageNameError{Input: input}
	}
	vs := VersionSet{Package: input[:i]}

	rest := skipSpace(input[i:])
	if rest == "" {
		return vs, nil
	}

	if rest[0] != '(' {
		return VersionSet{}, &BadConstraintError{Input: input, Rest: rest, Reason: "expected '('"}
	}
	rest = rest[1:]

	relation, rest, ok := parseRelation(rest)
	if !ok {
		return VersionSet{}, &BadConstraintError{Input: input, Rest: rest, Reason: "expected relation operator"}
	}
	rest = skipSpace(rest)

	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return VersionSet{}, &BadConstraintError{Input: input, Rest: rest, Reason: "expected ')'"}
	}
	if end == 0 {
		return VersionSet{}, &BadConstraintError{Input: input, Rest: rest, Reason: "expected version text"}
	}
	versionText := rest[:end]

	if trailing := skipSpace(rest[end+1:]); trailing != "" {
		return VersionSet{}, &BadConstraintError{Input: input, Rest: trailing, Reason: "trailing garbage after constraint"}
	}

	version, err := ParseVersion(versionText)
	if err != nil {
		return VersionSet{}, &BadVersionError{Input: input, Err: err}
	}

	vs.Constraint = &Constraint{Relation: relation, Version: version}
	return vs, nil
}

// String formats the version set as its parse grammar's exact inverse:
// "name" alone, or "name (relation version)".
func (vs VersionSet) String() string {
	if vs.Constraint == nil {
		return vs.Package
	}
	return fmt.Sprintf("%s (%s %s)", vs.Package, vs.Constraint.Relation, vs.Constraint.Version)
}

// Equal reports structural equality, using Version.Equal for the constraint
// version so that implicit and explicit zero epochs match.
func (vs VersionSet) Equal(other VersionSet) bool {
	if vs.Package != other.Package {
		return false
	}
	if (vs.Constraint == nil) != (other.Constraint == nil) {
		return false
	}
	if vs.Constraint == nil {
		return true
	}
	return vs.Constraint.Relation == other.Constraint.Relation &&
		vs.Constraint.Version.Equal(other.Constraint.Version)
}

// MarshalText implements encoding.TextMarshaler.
func (vs VersionSet) MarshalText() ([]byte, error) {
	return []byte(vs.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (vs *VersionSet) UnmarshalText(text []byte) error {
	parsed, err := ParseVersionSet(string(text))
	if err != nil {
		return err
	}
	*vs = parsed
	return nil
}

// Dependency is a dependency satisfiable by any one of several version sets:
// the mandatory first clause, plus zero or more '|'-separated alternates.
// Alternate order is significant for formatting only.
type Dependency struct {
	First      VersionSet
	Alternates []VersionSet
}

// DependencyError wraps the version-set error of the failing clause of a
// dependency together with its index. Index 0 is the mandatory first clause;
// alternates count from 1.
type DependencyError struct {
	Index int
	Err   error
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	return fmt.Sprintf("error parsing alternate %d: %v", e.Index, e.Err)
}

// Unwrap returns the failing clause's error.
func (e *DependencyError) Unwrap() error {
	return e.Err
}

// ParseDependency parses a '|'-separated alternation of version sets. The
// text before the first '|' is the mandatory first clause; the remainder is
// split on every '|' and each piece is trimmed and parsed as a VersionSet.
func ParseDependency(input string) (Dependency, error) {
	first, rest, _ := strings.Cut(input, "|")

	firstSet, err := ParseVersionSet(strings.TrimSpace(first))
	if err != nil {
		return Dependency{}, &DependencyError{Index: 0, Err: err}
	}

	dep := Dependency{First: firstSet}
	if rest != "" {
		for i, part := range strings.Split(rest, "|") {
			alt, err := ParseVersionSet(strings.TrimSpace(part))
			if err != nil {
				return Dependency{}, &DependencyError{Index: i + 1, Err: err}
			}
			dep.Alternates = append(dep.Alternates, alt)
		}
	}
	return dep, nil
}

// String joins the first clause and the alternates with " | ", in original
// order, as the exact inverse of ParseDependency.
func (d Dependency) String() string {
	if len(d.Alternates) == 0 {
		return d.First.String()
	}
	var sb strings.Builder
	sb.WriteString(d.First.String())
	for _, alt := range d.Alternates {
		sb.WriteString(" | ")
		sb.WriteString(alt.String())
	}
	return sb.String()
}

// Equal reports structural equality of the first clause and all alternates.
func (d Dependency) Equal(other Dependency) bool {
	if !d.First.Equal(other.First) || len(d.Alternates) != len(other.Alternates) {
		return false
	}
	for i, alt := range d.Alternates {
		if !alt.Equal(other.Alternates[i]) {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (d Dependency) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dependency) UnmarshalText(text []byte) error {
	parsed, err := ParseDependency(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
