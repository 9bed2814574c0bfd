package sanitize

import (
	"strings"
	"testing"
)

func TestHTML_StripsScripts(t *testing.T) {
	out := HTML(`<p>Hi</p><script>alert(1)</script>`)
	if strings.Contains(out, "script") {
		t.Errorf("expected script tag stripped, got %q", out)
	}
	if !strings.Contains(out, "<p>Hi</p>") {
		t.Errorf("expected paragraph preserved, got %q", out)
	}
}

func TestHTML_StripsEventHandlers(t *testing.T) {
	out := HTML(`<b onclick="steal()">10 years coaching</b>`)
	if strings.Contains(out, "onclick") {
		t.Errorf("expected event handler stripped, got %q", out)
	}
	if !strings.Contains(out, "10 years coaching") {
		t.Errorf("expected text preserved, got %q", out)
	}
}

func TestHTML_NofollowOnLinks(t *testing.T) {
	out := HTML(`<a href="https://example.com">my club</a>`)
	if !strings.Contains(out, `rel="nofollow"`) {
		t.Errorf("expected nofollow on links, got %q", out)
	}
}

func TestHTML_Empty(t *testing.T) {
	if out := HTML(""); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
