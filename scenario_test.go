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

package edsp_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	edsp "github.com/contriboss/edsp-go"
	"github.com/contriboss/edsp-go/rfc822"
)

// compareVersions makes go-cmp use the equality invariant of Version, which
// excludes the retained original text.
var compareVersions = cmp.Comparer(func(a, b edsp.Version) bool {
	return a.Equal(b)
})

func mustDependency(t *testing.T, s string) edsp.Dependency {
	t.Helper()
	dep, err := edsp.ParseDependency(s)
	if err != nil {
		t.Fatalf("ParseDependency(%q) error = %v", s, err)
	}
	return dep
}

func mustVersionSet(t *testing.T, s string) edsp.VersionSet {
	t.Helper()
	vs, err := edsp.ParseVersionSet(s)
	if err != nil {
		t.Fatalf("ParseVersionSet(%q) error = %v", s, err)
	}
	return vs
}

func TestRequestRoundTrip(t *testing.T) {
	text := "Request: EDSP 0.5\n" +
		"Architecture: amd64\n" +
		"Upgrade-All: yes\n"

	var got edsp.Request
	if err := rfc822.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	want := edsp.Request{
		Request:      "EDSP 0.5",
		Architecture: "amd64",
		Actions:      edsp.Actions{UpgradeAll: edsp.Yes},
	}
	if diff := cmp.Diff(want, got, compareVersions); diff != "" {
		t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
	}

	out, err := rfc822.Marshal(&got)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != text {
		t.Errorf("Marshal = %q, want round trip of %q", out, text)
	}
}

func TestRequestInstallRemoveLists(t *testing.T) {
	text := "Request: EDSP 0.5\n" +
		"Architecture: amd64\n" +
		"Remove: python3:all python:amd64\n" +
		"Install: libc:amd64 rustc:i386\n"

	var got edsp.Request
	if err := rfc822.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	want := edsp.Request{
		Request:      "EDSP 0.5",
		Architecture: "amd64",
		Actions: edsp.Actions{
			Remove: []edsp.ArchQualifiedPackageName{
				{Name: "python3", Architecture: "all"},
				{Name: "python", Architecture: "amd64"},
			},
			Install: []edsp.ArchQualifiedPackageName{
				{Name: "libc", Architecture: "amd64"},
				{Name: "rustc", Architecture: "i386"},
			},
		},
	}
	if diff := cmp.Diff(want, got, compareVersions); diff != "" {
		t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
	}

	out, err := rfc822.Marshal(&got)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != text {
		t.Errorf("Marshal = %q, want round trip of %q", out, text)
	}
}

func TestPackageRoundTrip(t *testing.T) {
	text := "Package: foo\n" +
		"Version: 1.0.0\n" +
		"Architecture: amd64\n" +
		"APT-ID: 0\n" +
		"APT-Pin: 500\n" +
		"Depends: bar (>= 0.1.0)\n"

	var got edsp.Package
	if err := rfc822.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	want := edsp.Package{
		Package:      "foo",
		Version:      edsp.MustParseVersion("1.0.0"),
		Architecture: "amd64",
		ID:           "0",
		Pin:          500,
		Depends:      []edsp.Dependency{mustDependency(t, "bar (>= 0.1.0)")},
	}
	if diff := cmp.Diff(want, got, compareVersions); diff != "" {
		t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
	}

	out, err := rfc822.Marshal(&got)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != text {
		t.Errorf("Marshal = %q, want round trip of %q", out, text)
	}
}

func TestPackageDependsFolding(t *testing.T) {
	text := "Package: foo\n" +
		"Version: 1.0.0\n" +
		"Architecture: amd64\n" +
		"APT-ID: 0\n" +
		"APT-Pin: 500\n" +
		"Depends: foo (= v1.0.0) | bar,\n" +
		"         baz,\n" +
		"         qux | quux (>> 0.1~1)\n"

	var got edsp.Package
	if err := rfc822.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	wantDepends := []edsp.Dependency{
		mustDependency(t, "foo (= v1.0.0) | bar"),
		mustDependency(t, "baz"),
		mustDependency(t, "qux | quux (>> 0.1~1)"),
	}
	if diff := cmp.Diff(wantDepends, got.Depends, compareVersions); diff != "" {
		t.Errorf("Depends mismatch (-want +got):\n%s", diff)
	}

	out, err := rfc822.Marshal(&got)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != text {
		t.Errorf("Marshal = %q, want round trip of %q", out, text)
	}
}

func TestPackageExtraFields(t *testing.T) {
	text := "Package: foo\n" +
		"Version: 1.0.0\n" +
		"Architecture: amd64\n" +
		"APT-ID: 0\n" +
		"APT-Pin: 500\n" +
		"Multi-Arch: foreign\n" +
		"Source: foo-src\n"

	var got edsp.Package
	if err := rfc822.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	wantExtra := map[string]string{"Multi-Arch": "foreign", "Source": "foo-src"}
	if diff := cmp.Diff(wantExtra, got.Extra); diff != "" {
		t.Errorf("Extra mismatch (-want +got):\n%s", diff)
	}

	out, err := rfc822.Marshal(&got)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != text {
		t.Errorf("Marshal = %q, want round trip of %q", out, text)
	}
}

func TestReadScenario(t *testing.T) {
	text := "Request: EDSP 0.5\n" +
		"Architecture: amd64\n" +
		"Upgrade-All: yes\n" +
		"\n" +
		"Package: foo\n" +
		"Version: 1.0.0\n" +
		"Architecture: amd64\n" +
		"APT-ID: 0\n" +
		"APT-Pin: 500\n" +
		"Depends: bar (>= 0.1.0)\n" +
		"\n" +
		"Package: bar\n" +
		"Version: 0.2.0\n" +
		"Architecture: amd64\n" +
		"Installed: yes\n" +
		"APT-ID: 1\n" +
		"APT-Pin: 500\n" +
		"Conflicts: foo (<< 1.0.0)\n"

	scenario, err := edsp.ReadScenario(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ReadScenario error = %v", err)
	}

	if scenario.Request.Request != "EDSP 0.5" || scenario.Request.UpgradeAll != edsp.Yes {
		t.Errorf("unexpected request %+v", scenario.Request)
	}
	if len(scenario.Universe) != 2 {
		t.Fatalf("universe size = %d, want 2", len(scenario.Universe))
	}

	bar := scenario.Universe[1]
	if bar.Package != "bar" || bar.Installed != edsp.Yes || bar.Pin != 500 {
		t.Errorf("unexpected package %+v", bar)
	}
	wantConflicts := []edsp.VersionSet{mustVersionSet(t, "foo (<< 1.0.0)")}
	if diff := cmp.Diff(wantConflicts, bar.Conflicts, compareVersions); diff != "" {
		t.Errorf("Conflicts mismatch (-want +got):\n%s", diff)
	}

	var sb strings.Builder
	if err := scenario.WriteScenario(&sb); err != nil {
		t.Fatalf("WriteScenario error = %v", err)
	}
	if sb.String() != text {
		t.Errorf("WriteScenario = %q, want round trip of %q", sb.String(), text)
	}
}

func TestArchQualifiedPackageName(t *testing.T) {
	var n edsp.ArchQualifiedPackageName
	if err := n.UnmarshalText([]byte("libc:amd64")); err != nil {
		t.Fatalf("UnmarshalText error = %v", err)
	}
	if n.Name != "libc" || n.Architecture != "amd64" {
		t.Errorf("parsed %+v", n)
	}
	if n.String() != "libc:amd64" {
		t.Errorf("String() = %q", n.String())
	}

	if err := n.UnmarshalText([]byte(":amd64")); err == nil {
		t.Error("UnmarshalText accepted empty name")
	}

	if err := n.UnmarshalText([]byte("dpkg")); err != nil {
		t.Fatalf("UnmarshalText error = %v", err)
	}
	if n.Name != "dpkg" || n.Architecture != "" || n.String() != "dpkg" {
		t.Errorf("parsed %+v", n)
	}
}
