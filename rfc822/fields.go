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

package rfc822

import (
	"fmt"
	"reflect"
	"strings"
)

// field describes one stanza field of a struct type, after flattening
// embedded structs.
type field struct {
	name      string
	index     []int
	spaceList bool
	extra     bool
}

var stringMapType = reflect.TypeOf(map[string]string(nil))

// structFields flattens t into its stanza fields, in declaration order.
// At most one field may carry the "extra" option.
func structFields(t reflect.Type) ([]field, error) {
	var fields []field
	seenExtra := false

	var walk func(t reflect.Type, index []int) error
	walk = func(t reflect.Type, index []int) error {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				// Unexported anonymous structs still contribute their
				// promoted exported fields, as in encoding/json.
				if !sf.Anonymous || sf.Type.Kind() != reflect.Struct || sf.Tag.Get("rfc822") != "" {
					continue
				}
			}
			tag := sf.Tag.Get("rfc822")
			if tag == "-" {
				continue
			}

			idx := make([]int, len(index), len(index)+1)
			copy(idx, index)
			idx = append(idx, i)

			if sf.Anonymous && sf.Type.Kind() == reflect.Struct && tag == "" {
				if err := walk(sf.Type, idx); err != nil {
					return err
				}
				continue
			}

			f := field{index: idx}
			name, opts, _ := strings.Cut(tag, ",")
			f.name = name
			for _, opt := range strings.Split(opts, ",") {
				switch opt {
				case "":
				case "spacelist":
					f.spaceList = true
				case "extra":
					f.extra = true
				default:
					return fmt.Errorf("rfc822: unknown option %q in tag of field %s.%s", opt, t.Name(), sf.Name)
				}
			}

			if f.extra {
				if sf.Type != stringMapType {
					return fmt.Errorf("rfc822: extra field %s.%s must be a map[string]string", t.Name(), sf.Name)
				}
				if seenExtra {
					return fmt.Errorf("rfc822: multiple extra fields in %s", t.Name())
				}
				seenExtra = true
			} else if f.name == "" {
				f.name = sf.Name
			}

			fields = append(fields, f)
		}
		return nil
	}

	if err := walk(t, nil); err != nil {
		return nil, err
	}
	return fields, nil
}
