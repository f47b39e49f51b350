package buildinfo

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if got := Generator(); got != "flowdiagram v1.2.3" {
		t.Errorf("Generator = %q", got)
	}
	if !strings.HasPrefix(String(), "version: v1.2.3\n") {
		t.Errorf("String = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template = %q", Template())
	}
}

func TestResolveKeepsLdflags(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	Resolve()
	if Version != "v9.9.9" {
		t.Errorf("Resolve overwrote Version: %q", Version)
	}
}
