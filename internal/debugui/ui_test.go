package debugui

import "testing"

func TestUIUpdateFPS(t *testing.T) {
	ui := &UI{panel: NewPanel("Debug")}
	for i := 0; i < 60; i++ {
		ui.updateFPS(1.0 / 60)
	}
	if ui.fps != 0 {
		// float sums can land just under one second
		if ui.fps < 59 || ui.fps > 61 {
			t.Errorf("Expected about 60 fps, got %v", ui.fps)
		}
	}
	ui.updateFPS(0.5)
	if ui.fps < 40 || ui.fps > 62 {
		t.Errorf("Expected fps to be refreshed after a second, got %v", ui.fps)
	}
}

func TestUIToggleFollowsPanel(t *testing.T) {
	ui := &UI{panel: NewPanel("Debug")}
	if !ui.Visible() {
		t.Fatal("Panels start visible")
	}
	ui.Toggle()
	if ui.Visible() || ui.Panel().Visible {
		t.Error("Toggle should hide the panel")
	}
	if ui.WantCaptureMouse() || ui.WantCaptureKeyboard() {
		t.Error("A hidden panel never captures input")
	}
}
