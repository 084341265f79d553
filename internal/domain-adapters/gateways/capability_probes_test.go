package gateways

import "testing"

func TestLookupTool_Present(t *testing.T) {
	// sh is present on any host these tests run on.
	ok, err := lookupTool("sh")
	if err != nil {
		t.Fatalf("lookupTool(sh) error = %v", err)
	}
	if !ok {
		t.Error("lookupTool(sh) = false, want true")
	}
}

func TestLookupTool_Absent(t *testing.T) {
	ok, err := lookupTool("rcheck-no-such-tool-on-any-host")
	if err != nil {
		t.Fatalf("lookupTool() error = %v, want clean false for a missing tool", err)
	}
	if ok {
		t.Error("lookupTool() = true for a missing tool")
	}
}
