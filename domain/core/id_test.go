package core

import "testing"

// TestNewID_Unique verifies generated IDs are non-empty and distinct
func TestNewID_Unique(t *testing.T) {
	a := NewID()
	b := NewID()
	if a.IsEmpty() || b.IsEmpty() {
		t.Fatal("Expected generated IDs to be non-empty")
	}
	if a == b {
		t.Errorf("Expected distinct IDs, got %s twice", a)
	}
}

// TestReportID_ForwardsIDMethods verifies the report subtype carries the
// base ID behavior
func TestReportID_ForwardsIDMethods(t *testing.T) {
	var empty ReportID
	if !empty.IsEmpty() {
		t.Error("Expected the zero ReportID to be empty")
	}

	id := ReportID(NewID())
	if id.IsEmpty() {
		t.Error("Expected a generated ReportID to be non-empty")
	}
	if id.String() != string(id) {
		t.Errorf("Expected String to return the raw value, got %s", id.String())
	}
}
