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

import "fmt"

// Bool is a boolean stanza value with the textual forms "yes" and "no".
// Its zero value is No, so absent yes/no fields decode to No and fields
// holding No are omitted when encoding.
type Bool bool

const (
	// Yes is the Bool corresponding to "yes".
	Yes Bool = true
	// No is the Bool corresponding to "no".
	No Bool = false
)

// ParseBool parses "yes" or "no"; anything else is an error.
func ParseBool(s string) (Bool, error) {
	switch s {
	case "yes":
		return Yes, nil
	case "no":
		return No, nil
	default:
		return No, fmt.Errorf("invalid boolean %q: expected \"yes\" or \"no\"", s)
	}
}

// String returns "yes" or "no".
func (b Bool) String() string {
	if b {
		return "yes"
	}
	return "no"
}

// MarshalText implements encoding.TextMarshaler.
func (b Bool) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bool) UnmarshalText(text []byte) error {
	parsed, err := ParseBool(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
