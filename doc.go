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

// Package edsp is a Go data model of the APT External Dependency Solver
// Protocol (EDSP), the stanza-based text protocol APT speaks with external
// dependency solvers. It is useful for writing custom APT solvers in Go.
//
// The protocol input is a Scenario: a Request stanza describing what APT
// wants resolved, followed by a Package stanza for every installable package
// (the universe). The solver replies with Answer stanzas (Install, Remove,
// Autoremove, or AnswerError), optionally interleaved with Progress stanzas.
//
// Version implements Debian's version comparison semantics, and Dependency
// and VersionSet model the "one of these version-constrained packages"
// relationship grammar used by Depends and Conflicts fields. All protocol
// values round-trip: formatting a parsed value reproduces its exact input
// text.
//
// This package only models the wire data; it does not solve anything.
package edsp
