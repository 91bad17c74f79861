package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionSave)
	if !f.Has(ActionLeft) || !f.Has(ActionSave) {
		t.Error("frame should report set actions")
	}
	if f.Has(ActionRight) {
		t.Error("frame should not report unset actions")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionLeft) {
		t.Error("Clear should reset every action")
	}
}

func TestActionString(t *testing.T) {
	if ActionRight.String() != "Right" {
		t.Errorf("ActionRight.String() = %q", ActionRight.String())
	}
	if Action(200).String() != "Unknown" {
		t.Errorf("Action(200).String() = %q", Action(200).String())
	}
}
