package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "v1.2.3"

	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("Template() = %q, missing commit", got)
	}
}

func TestLogFields(t *testing.T) {
	fields := LogFields()
	if len(fields)%2 != 0 {
		t.Fatalf("LogFields() has odd length %d", len(fields))
	}
	if fields[0] != "version" || fields[1] != Version {
		t.Errorf("LogFields() = %v", fields)
	}
}
