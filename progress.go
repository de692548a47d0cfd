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

// Progress is the stanza a solver may emit while working, reporting how far
// along it is. Percentage and Message are optional.
type Progress struct {
	Progress   string `rfc822:"Progress"`
	Percentage string `rfc822:"Percentage"`
	Message    string `rfc822:"Message"`
}
