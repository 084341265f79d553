package main

import (
	"flag"
	"io"
	"reflect"
	"testing"
)

// parsePositionals runs a throwaway flag set over raw the way the
// subcommands do, returning what flag parsing leaves behind.
func parsePositionals(t *testing.T, raw []string) []string {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Bool("quiet", false, "")
	if err := fs.Parse(raw); err != nil {
		t.Fatalf("parsing %v: %v", raw, err)
	}
	return fs.Args()
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name      string
		raw       []string
		wantPath  string
		wantExtra []string
	}{
		{
			name:     "no positionals",
			raw:      []string{"--quiet"},
			wantPath: ".",
		},
		{
			name:     "path only",
			raw:      []string{"pkg"},
			wantPath: "pkg",
		},
		{
			name:      "path with extras",
			raw:       []string{"pkg", "--no-tests"},
			wantPath:  "pkg",
			wantExtra: []string{"--no-tests"},
		},
		{
			name:      "extras without a path",
			raw:       []string{"--", "--no-tests"},
			wantPath:  ".",
			wantExtra: []string{"--no-tests"},
		},
		{
			name:      "flags then extras without a path",
			raw:       []string{"--quiet", "--", "--no-tests", "--no-vignettes"},
			wantPath:  ".",
			wantExtra: []string{"--no-tests", "--no-vignettes"},
		},
		{
			name:      "path separated from extras",
			raw:       []string{"pkg", "--", "--no-tests"},
			wantPath:  "pkg",
			wantExtra: []string{"--no-tests"},
		},
		{
			name:      "flags then path then extras",
			raw:       []string{"--quiet", "pkg", "--", "--no-tests"},
			wantPath:  "pkg",
			wantExtra: []string{"--no-tests"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, extra := splitArgs(tt.raw, parsePositionals(t, tt.raw))
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
			if !reflect.DeepEqual(extra, tt.wantExtra) && !(len(extra) == 0 && len(tt.wantExtra) == 0) {
				t.Errorf("extra = %#v, want %#v", extra, tt.wantExtra)
			}
		})
	}
}
