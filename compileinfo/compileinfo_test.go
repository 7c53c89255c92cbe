package compileinfo

import "testing"

func TestHeaderLine(t *testing.T) {
	c := CompileInfo{Version: "v1.2.0", Commit: "abc123", GoVersion: "go1.18", Modified: true}

	expected := "##pedmodels_build=<Version=v1.2.0,Commit=abc123,Go=go1.18,Modified=true>"
	if got := c.HeaderLine("pedmodels"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	expected = "##pedmodels_build=<Version=unknown,Commit=unknown,Go=unknown,Modified=false>"
	if got := (CompileInfo{}).HeaderLine("pedmodels"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
