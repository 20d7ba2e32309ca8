package scan

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("https://example.com/")
	if prompt == nil {
		t.Fatal("Expected non-nil prompt")
	}

	text := prompt.String()
	for _, want := range []string{"https://example.com/", "1. Business Overview", "7. Full Clean Summary"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(text, "{{URL}}") {
		t.Error("URL placeholder was not replaced")
	}
}
