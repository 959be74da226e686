package dandelion

import "testing"

func TestStatsText(t *testing.T) {
	got := statsText(59.94, 60, StyleWatercolor, PaletteDawn, 30, 110)
	want := "FPS: 59.9\nTPS: 60.0\nWatercolor / dawn\nseeds: 80/110"
	if got != want {
		t.Errorf("statsText = %q, want %q", got, want)
	}
}

func TestStatsOverlayRefresh(t *testing.T) {
	var o statsOverlay
	if !o.update(1.0 / 60) {
		t.Fatal("empty overlay did not ask for text")
	}
	o.text = "FPS: 60.0"
	if o.update(0.2) {
		t.Error("refreshed before the interval")
	}
	if !o.update(0.31) {
		t.Error("did not refresh after the interval")
	}
	if o.elapsed != 0 {
		t.Errorf("elapsed = %v after refresh, want 0", o.elapsed)
	}
}
