package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	v, c, d := Info()
	switch {
	case v == "":
		t.Error("version should not be empty")
	case c == "":
		t.Error("commit should not be empty")
	case d == "":
		t.Error("date should not be empty")
	}
}

func TestString(t *testing.T) {
	v, c, _ := Info()
	s := String()
	if !strings.HasPrefix(s, v) {
		t.Errorf("expected %q to start with version %q", s, v)
	}
	if !strings.Contains(s, "commit "+c) {
		t.Errorf("expected %q to mention commit %q", s, c)
	}
}
