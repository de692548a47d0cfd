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

// Package rfc822 converts between the line-oriented stanza format of Debian
// control data and Go structs.
//
// A stanza is a block of "Key: value" lines terminated by a blank line or
// EOF. A line starting with a space or tab continues the previous field's
// value. Struct fields are mapped to stanza fields with `rfc822` tags:
//
//	type Package struct {
//		Package string            `rfc822:"Package"`
//		Pin     int               `rfc822:"APT-Pin"`
//		Depends []Dependency      `rfc822:"Depends"`
//		Install []Name            `rfc822:"Install,spacelist"`
//		Extra   map[string]string `rfc822:",extra"`
//	}
//
// Untagged exported fields use their Go name; "-" skips a field. Embedded
// structs are flattened into the enclosing stanza. Values may be strings,
// integers, or any type implementing encoding.TextMarshaler and
// encoding.TextUnmarshaler. Zero values are omitted when encoding.
//
// Slice fields hold repeated values. By default elements are separated by
// commas, with elements after the first placed on continuation lines
// indented to align under the first value character:
//
//	Depends: foo (= v1.0.0) | bar,
//	         baz
//
// The "spacelist" option instead joins elements with single spaces on one
// line. A map[string]string field tagged with the "extra" option collects
// stanza fields no struct field claims, and emits them in sorted key order.
//
// The Encoder and Decoder stream stanzas the way encoding/json streams
// values: Decoder.Decode fills one struct per stanza and returns io.EOF when
// the input is exhausted, and decoding into a slice pointer consumes every
// remaining stanza.
package rfc822
