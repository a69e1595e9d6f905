package main

import (
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	v := getVersion()
	if v == "" {
		t.Fatal("getVersion() returned empty string")
	}
	// Under go test the build has no release version, so "dev" is
	// expected; an installed binary reports a semver tag.
	if v != "dev" && !strings.HasPrefix(v, "v") {
		t.Errorf("getVersion() = %q, want 'dev' or a vX.Y.Z tag", v)
	}
}

func TestGetVersionPrefersLdflags(t *testing.T) {
	orig := version
	defer func() { version = orig }()

	version = "v9.9.9"
	if got := getVersion(); got != "v9.9.9" {
		t.Errorf("getVersion() = %q, want ldflags value", got)
	}
}
