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
	"bufio"
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// SyntaxError reports a malformed stanza line.
type SyntaxError struct {
	Line   string
	Reason string
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("rfc822: %s in line %q", e.Reason, e.Line)
}

// FieldError wraps an error converting one stanza field's value.
type FieldError struct {
	Field string
	Err   error
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("rfc822: field %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Decoder reads stanzas from an input stream.
type Decoder struct {
	s *bufio.Scanner
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{s: bufio.NewScanner(r)}
}

// stanzaField is one logical field of a stanza: the first-line value plus
// any continuation lines, whitespace-trimmed.
type stanzaField struct {
	key   string
	lines []string
}

// readStanza reads the next stanza, skipping blank lines before it.
// It returns io.EOF when no stanza remains.
func (d *Decoder) readStanza() ([]stanzaField, error) {
	var stanza []stanzaField
	for d.s.Scan() {
		line := d.s.Text()
		if strings.TrimSpace(line) == "" {
			if len(stanza) > 0 {
				return stanza, nil
			}
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(stanza) == 0 {
				return nil, &SyntaxError{Line: line, Reason: "continuation line before any field"}
			}
			last := &stanza[len(stanza)-1]
			last.lines = append(last.lines, strings.TrimSpace(line))
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &SyntaxError{Line: line, Reason: "missing ':' separator"}
		}
		stanza = append(stanza, stanzaField{
			key:   strings.TrimSpace(key),
			lines: []string{strings.TrimSpace(value)},
		})
	}
	if err := d.s.Err(); err != nil {
		return nil, err
	}
	if len(stanza) == 0 {
		return nil, io.EOF
	}
	return stanza, nil
}

// Decode reads the next stanza into the struct pointed to by v, or every
// remaining stanza into the slice pointed to by v. It returns io.EOF when
// the input holds no further stanza.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("rfc822: Decode target must be a non-nil pointer, got %T", v)
	}
	elem := rv.Elem()

	switch elem.Kind() {
	case reflect.Slice:
		return d.decodeSlice(elem)
	case reflect.Struct:
		stanza, err := d.readStanza()
		if err != nil {
			return err
		}
		return decodeStanza(stanza, elem)
	default:
		return fmt.Errorf("rfc822: cannot decode into %s", elem.Type())
	}
}

func (d *Decoder) decodeSlice(sv reflect.Value) error {
	if sv.Type().Elem().Kind() != reflect.Struct {
		return fmt.Errorf("rfc822: cannot decode into %s", sv.Type())
	}
	for {
		stanza, err := d.readStanza()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		ev := reflect.New(sv.Type().Elem()).Elem()
		if err := decodeStanza(stanza, ev); err != nil {
			return err
		}
		sv.Set(reflect.Append(sv, ev))
	}
}

// decodeStanza fills the struct value rv from a parsed stanza. Fields the
// struct does not declare go to its extra map, if it has one, and are
// otherwise ignored.
func decodeStanza(stanza []stanzaField, rv reflect.Value) error {
	fields, err := structFields(rv.Type())
	if err != nil {
		return err
	}

	byName := make(map[string]field, len(fields))
	var extra *field
	for i := range fields {
		if fields[i].extra {
			extra = &fields[i]
			continue
		}
		byName[fields[i].name] = fields[i]
	}

	for _, sf := range stanza {
		f, ok := byName[sf.key]
		if !ok {
			if extra != nil {
				mv := rv.FieldByIndex(extra.index)
				if mv.IsNil() {
					mv.Set(reflect.MakeMap(stringMapType))
				}
				mv.SetMapIndex(reflect.ValueOf(sf.key), reflect.ValueOf(strings.Join(sf.lines, "\n")))
			}
			continue
		}

		fv := rv.FieldByIndex(f.index)
		if err := decodeField(fv, f, sf.lines); err != nil {
			return &FieldError{Field: sf.key, Err: err}
		}
	}
	return nil
}

func decodeField(fv reflect.Value, f field, lines []string) error {
	if fv.Kind() == reflect.Slice {
		var parts []string
		if f.spaceList {
			parts = strings.Fields(strings.Join(lines, " "))
		} else {
			for _, part := range strings.Split(strings.Join(lines, " "), ",") {
				parts = append(parts, strings.TrimSpace(part))
			}
		}
		slice := reflect.MakeSlice(fv.Type(), 0, len(parts))
		for _, part := range parts {
			ev := reflect.New(fv.Type().Elem()).Elem()
			if err := decodeScalar(ev, part); err != nil {
				return err
			}
			slice = reflect.Append(slice, ev)
		}
		fv.Set(slice)
		return nil
	}
	return decodeScalar(fv, strings.Join(lines, "\n"))
}

func decodeScalar(fv reflect.Value, text string) error {
	if fv.CanAddr() {
		if u, ok := fv.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(text))
		}
	}
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(text)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return err
		}
		fv.SetInt(n)
		return nil
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
}

// Unmarshal decodes the first stanza of data into a struct, or every stanza
// into a slice, pointed to by v.
func Unmarshal(data []byte, v any) error {
	return NewDecoder(bytes.NewReader(data)).Decode(v)
}
