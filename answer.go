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
	"io"

	"github.com/contriboss/edsp-go/rfc822"
)

// Answer is one stanza of a solver's reply to a scenario: an installation,
// a removal, an autoremoval, or an error aborting the whole answer.
type Answer interface {
	answer()
}

// Install tells the package manager to install the package with the given
// APT-ID.
type Install struct {
	Install string            `rfc822:"Install"`
	Extra   map[string]string `rfc822:",extra"`
}

// Remove tells the package manager to remove the package with the given
// APT-ID.
type Remove struct {
	Remove string            `rfc822:"Remove"`
	Extra  map[string]string `rfc822:",extra"`
}

// Autoremove tells the package manager the package with the given APT-ID is
// no longer needed and may be removed.
type Autoremove struct {
	Autoremove string            `rfc822:"Autoremove"`
	Extra      map[string]string `rfc822:",extra"`
}

// AnswerError aborts the answer: the solver could not produce a solution.
// Error identifies the failure and Message describes it for the user.
type AnswerError struct {
	Error   string `rfc822:"Error"`
	Message string `rfc822:"Message"`
}

func (Install) answer()     {}
func (Remove) answer()      {}
func (Autoremove) answer()  {}
func (AnswerError) answer() {}

// WriteAnswer encodes a single answer stanza to w.
func WriteAnswer(w io.Writer, a Answer) error {
	return rfc822.NewEncoder(w).Encode(a)
}
