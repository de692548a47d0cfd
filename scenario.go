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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/contriboss/edsp-go/rfc822"
)

// ArchQualifiedPackageName is a package name qualified with an architecture,
// written "name:arch". Install and Remove request fields hold
// space-separated lists of these.
type ArchQualifiedPackageName struct {
	Name         string
	Architecture string
}

// String returns "name:arch", or just the name when the architecture is
// empty.
func (n ArchQualifiedPackageName) String() string {
	if n.Architecture == "" {
		return n.Name
	}
	return n.Name + ":" + n.Architecture
}

// MarshalText implements encoding.TextMarshaler.
func (n ArchQualifiedPackageName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The architecture is the
// text after the first ':', empty if there is none.
func (n *ArchQualifiedPackageName) UnmarshalText(text []byte) error {
	name, arch, _ := strings.Cut(string(text), ":")
	if name == "" {
		return fmt.Errorf("empty package name in %q", string(text))
	}
	n.Name = name
	n.Architecture = arch
	return nil
}

// Actions are the operations a request asks the solver to resolve.
type Actions struct {
	DistUpgrade Bool                       `rfc822:"Dist-Upgrade"`
	Upgrade     Bool                       `rfc822:"Upgrade"`
	Autoremove  Bool                       `rfc822:"Autoremove"`
	UpgradeAll  Bool                       `rfc822:"Upgrade-All"`
	Remove      []ArchQualifiedPackageName `rfc822:"Remove,spacelist"`
	Install     []ArchQualifiedPackageName `rfc822:"Install,spacelist"`
}

// Preferences are the solver preferences carried by a request. Fields this
// model does not know about are kept in Extra.
type Preferences struct {
	StrictPinning Bool              `rfc822:"Strict-Pinning"`
	Solver        string            `rfc822:"Solver"`
	Extra         map[string]string `rfc822:",extra"`
}

// Request is the first stanza of a scenario: the EDSP protocol version, the
// architectures in play, and the actions and preferences of the invocation.
type Request struct {
	Request       string `rfc822:"Request"`
	Architecture  string `rfc822:"Architecture"`
	Architectures string `rfc822:"Architectures"`
	Actions
	Preferences
}

// Package is one package stanza of the scenario universe. Fields this model
// does not know about are kept in Extra.
type Package struct {
	Package      string            `rfc822:"Package"`
	Version      Version           `rfc822:"Version"`
	Architecture string            `rfc822:"Architecture"`
	Installed    Bool              `rfc822:"Installed"`
	ID           string            `rfc822:"APT-ID"`
	Pin          int               `rfc822:"APT-Pin"`
	Candidate    Bool              `rfc822:"APT-Candidate"`
	Depends      []Dependency      `rfc822:"Depends"`
	Conflicts    []VersionSet      `rfc822:"Conflicts"`
	Extra        map[string]string `rfc822:",extra"`
}

// Scenario is a full EDSP input: the request stanza followed by the package
// universe.
type Scenario struct {
	Request  Request
	Universe []Package
}

// ReadScenario reads a request stanza and then package stanzas until EOF.
func ReadScenario(r io.Reader) (*Scenario, error) {
	log.Info().Msg("parsing scenario")

	dec := rfc822.NewDecoder(r)

	var request Request
	if err := dec.Decode(&request); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	log.Debug().
		Str("request", request.Request).
		Str("architecture", request.Architecture).
		Msg("parsed request")

	var universe []Package
	for {
		var pkg Package
		err := dec.Decode(&pkg)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode package %d: %w", len(universe), err)
		}
		universe = append(universe, pkg)
	}
	log.Debug().Int("packages", len(universe)).Msg("parsed universe")

	return &Scenario{Request: request, Universe: universe}, nil
}

// WriteScenario encodes the request stanza followed by every package stanza,
// the inverse of ReadScenario.
func (s *Scenario) WriteScenario(w io.Writer) error {
	enc := rfc822.NewEncoder(w)
	if err := enc.Encode(&s.Request); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	for i := range s.Universe {
		if err := enc.Encode(&s.Universe[i]); err != nil {
			return fmt.Errorf("encode package %d: %w", i, err)
		}
	}
	return nil
}
