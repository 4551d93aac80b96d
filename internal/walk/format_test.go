package walk

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestFormatPath(t *testing.T) {
	root := filepath.Join("work", "src")
	msg := NewListMessage(root, filepath.Join(root, "ui", "a.swift"))

	testCases := []struct {
		template string
		expected string
	}{
		{"{}", filepath.Join("work", "src", "ui", "a.swift")},
		{"{rel}", filepath.Join("ui", "a.swift")},
		{"{base} in {dir}", "a.swift in " + filepath.Join("work", "src", "ui")},
		{"{ext}", "swift"},
		{`{"base"}`, `"a.swift"`},
		{"plain", "plain"},
	}

	for _, tc := range testCases {
		if got := FormatPath(tc.template, msg); got != tc.expected {
			t.Errorf("FormatPath(%q) = %q, expected %q", tc.template, got, tc.expected)
		}
	}
}

func TestNewListMessageWithoutExtension(t *testing.T) {
	msg := NewListMessage("src", filepath.Join("src", "Makefile"))
	if msg.Ext != "" {
		t.Errorf("Expected empty extension, got %q", msg.Ext)
	}
	if msg.Name != "Makefile" {
		t.Errorf("Expected name Makefile, got %q", msg.Name)
	}
}

func TestPrintPathsKeepsOrder(t *testing.T) {
	paths := []string{filepath.Join("src", "b.txt"), filepath.Join("src", "a.txt")}

	var buf bytes.Buffer
	if err := PrintPaths(&buf, "src", paths, ""); err != nil {
		t.Fatalf("PrintPaths failed: %v", err)
	}

	expected := paths[0] + "\n" + paths[1] + "\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}
