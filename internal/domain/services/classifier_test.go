package services

import (
	"reflect"
	"testing"
)

func TestClassifier_ParseCheckLog_NoMarkers(t *testing.T) {
	c := NewClassifier()

	report := c.ParseCheckLog(`* using log directory '/tmp/pkg.Rcheck'
* using R version 4.4.1
* checking DESCRIPTION meta-information ... OK
`)

	if !report.Clean() {
		t.Errorf("ParseCheckLog() = %+v, want empty report", report)
	}
}

func TestClassifier_ParseCheckLog_EmptyInput(t *testing.T) {
	c := NewClassifier()

	if report := c.ParseCheckLog(""); !report.Clean() {
		t.Errorf("ParseCheckLog(\"\") = %+v, want empty report", report)
	}
}

func TestClassifier_ParseCheckLog_OneBlockPerSeverity(t *testing.T) {
	c := NewClassifier()

	report := c.ParseCheckLog(`* using log directory 'x'
* ERROR
Required field missing.
* WARNING
Undocumented argument.
* NOTE
New submission.
`)

	if want := []string{"Required field missing."}; !reflect.DeepEqual(report.Errors, want) {
		t.Errorf("Errors = %#v, want %#v", report.Errors, want)
	}
	if want := []string{"Undocumented argument."}; !reflect.DeepEqual(report.Warnings, want) {
		t.Errorf("Warnings = %#v, want %#v", report.Warnings, want)
	}
	if want := []string{"New submission."}; !reflect.DeepEqual(report.Notes, want) {
		t.Errorf("Notes = %#v, want %#v", report.Notes, want)
	}
}

func TestClassifier_ParseCheckLog_OrderPreservedWithinBucket(t *testing.T) {
	c := NewClassifier()

	report := c.ParseCheckLog(`* NOTE
first note
* WARNING
a warning
* NOTE
second note
`)

	want := []string{"first note", "second note"}
	if !reflect.DeepEqual(report.Notes, want) {
		t.Errorf("Notes = %#v, want %#v", report.Notes, want)
	}
	if len(report.Warnings) != 1 || len(report.Errors) != 0 {
		t.Errorf("unexpected buckets: %+v", report)
	}
}

func TestClassifier_ParseCheckLog_MultiLineBlock(t *testing.T) {
	c := NewClassifier()

	report := c.ParseCheckLog(`* WARNING checking Rd cross-references
Missing link or links in documentation object 'foo.Rd':
  'bar'
* checking for unstated dependencies ... OK
`)

	// The trailing informational line is part of the warning block: only a
	// severity marker ends a block.
	want := "Missing link or links in documentation object 'foo.Rd':\n  'bar'\n* checking for unstated dependencies ... OK"
	if len(report.Warnings) != 1 || report.Warnings[0] != want {
		t.Errorf("Warnings = %#v, want [%q]", report.Warnings, want)
	}
}

func TestClassifier_ParseCheckLog_TruncatedLog(t *testing.T) {
	c := NewClassifier()

	report := c.ParseCheckLog("* ERROR\nInstallation failed.\nSee the insta")

	want := "Installation failed.\nSee the insta"
	if len(report.Errors) != 1 || report.Errors[0] != want {
		t.Errorf("Errors = %#v, want [%q]", report.Errors, want)
	}
}

func TestClassifier_ParseCheckLog_MarkerWithEmptyBlock(t *testing.T) {
	c := NewClassifier()

	report := c.ParseCheckLog("* ERROR\n* NOTE\nsomething\n")

	if len(report.Errors) != 1 || report.Errors[0] != "" {
		t.Errorf("Errors = %#v, want one empty message", report.Errors)
	}
	if len(report.Notes) != 1 || report.Notes[0] != "something" {
		t.Errorf("Notes = %#v, want [\"something\"]", report.Notes)
	}
}

func TestClassifier_ParseCheckLog_CaseSensitive(t *testing.T) {
	c := NewClassifier()

	report := c.ParseCheckLog("* error\nlowercase is informational\n")

	if !report.Clean() {
		t.Errorf("ParseCheckLog() = %+v, want empty report for lowercase marker", report)
	}
}

func TestClassifier_ParseCheckLog_Idempotent(t *testing.T) {
	c := NewClassifier()
	log := "* ERROR\none\n* WARNING\ntwo\n* NOTE\nthree\n"

	first := c.ParseCheckLog(log)
	second := c.ParseCheckLog(log)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("ParseCheckLog() not idempotent: %+v vs %+v", first, second)
	}
}
