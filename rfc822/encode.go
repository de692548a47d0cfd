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
	"bytes"
	"encoding"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Encoder writes stanzas to an output stream, separating consecutive
// stanzas with a blank line.
type Encoder struct {
	w     io.Writer
	wrote bool
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes v as one stanza, or a slice as one stanza per element.
// Pointers are followed; zero-valued fields are omitted.
func (e *Encoder) Encode(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("rfc822: Encode of nil pointer")
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			if err := e.encodeStanza(rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		return e.encodeStanza(rv)
	default:
		return fmt.Errorf("rfc822: cannot encode %s", rv.Type())
	}
}

func (e *Encoder) encodeStanza(rv reflect.Value) error {
	fields, err := structFields(rv.Type())
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, f := range fields {
		fv := rv.FieldByIndex(f.index)

		if f.extra {
			keys := make([]string, 0, fv.Len())
			for _, k := range fv.MapKeys() {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			for _, k := range keys {
				writeField(&sb, k, foldValue(fv.MapIndex(reflect.ValueOf(k)).String()))
			}
			continue
		}

		if fv.IsZero() {
			continue
		}

		if fv.Kind() == reflect.Slice {
			texts := make([]string, fv.Len())
			for i := 0; i < fv.Len(); i++ {
				text, err := scalarText(fv.Index(i))
				if err != nil {
					return &FieldError{Field: f.name, Err: err}
				}
				texts[i] = text
			}
			if f.spaceList {
				writeField(&sb, f.name, strings.Join(texts, " "))
			} else {
				indent := strings.Repeat(" ", len(f.name)+2)
				writeField(&sb, f.name, strings.Join(texts, ",\n"+indent))
			}
			continue
		}

		text, err := scalarText(fv)
		if err != nil {
			return &FieldError{Field: f.name, Err: err}
		}
		writeField(&sb, f.name, foldValue(text))
	}

	if e.wrote {
		if _, err := io.WriteString(e.w, "\n"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(e.w, sb.String()); err != nil {
		return err
	}
	e.wrote = true
	return nil
}

// foldValue turns embedded newlines in a scalar value into continuation
// lines. List values arrive already folded with their alignment indent.
func foldValue(value string) string {
	return strings.ReplaceAll(value, "\n", "\n ")
}

// writeField writes one "Key: value" line.
func writeField(sb *strings.Builder, key, value string) {
	sb.WriteString(key)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

func scalarText(fv reflect.Value) (string, error) {
	if m, ok := fv.Interface().(encoding.TextMarshaler); ok {
		b, err := m.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(fv.Int(), 10), nil
	default:
		return "", fmt.Errorf("unsupported field type %s", fv.Type())
	}
}

// Marshal encodes v (a struct, pointer to struct, or slice of structs) to
// stanza text.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
