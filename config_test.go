package grasp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
	if cfg.TouchRadius != 0.15 {
		t.Errorf("TouchRadius = %v, want 0.15", cfg.TouchRadius)
	}
	if cfg.PinchHold != 500*time.Millisecond {
		t.Errorf("PinchHold = %v, want 500ms", cfg.PinchHold)
	}
	if cfg.MaxPinchWidth != 0.045 {
		t.Errorf("MaxPinchWidth = %v, want 0.045", cfg.MaxPinchWidth)
	}
	if cfg.MinPinchGap != 0.0095 {
		t.Errorf("MinPinchGap = %v, want 0.0095", cfg.MinPinchGap)
	}
	if cfg.ConfidenceFloor != 0.95 {
		t.Errorf("ConfidenceFloor = %v, want 0.95", cfg.ConfidenceFloor)
	}
	if cfg.ResetPose != PoseOpenHand {
		t.Errorf("ResetPose = %v, want open-hand", cfg.ResetPose)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	doc := []byte(`
touch_radius: 0.2
pinch_hold: 750ms
reset_pose: fist
`)
	cfg, err := ParseConfig(doc)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.TouchRadius != 0.2 {
		t.Errorf("TouchRadius = %v, want 0.2", cfg.TouchRadius)
	}
	if cfg.PinchHold != 750*time.Millisecond {
		t.Errorf("PinchHold = %v, want 750ms", cfg.PinchHold)
	}
	if cfg.ResetPose != PoseFist {
		t.Errorf("ResetPose = %v, want fist", cfg.ResetPose)
	}
	// Untouched keys keep their defaults.
	if cfg.MinPinchGap != DefaultMinPinchGap {
		t.Errorf("MinPinchGap = %v, want default", cfg.MinPinchGap)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad duration", "pinch_hold: soon", "pinch_hold"},
		{"unknown pose", "reset_pose: jazz-hands", "reset_pose"},
		{"negative radius", "touch_radius: -1", "touch_radius"},
		{"gap above width", "min_pinch_gap: 0.5", "min_pinch_gap"},
		{"not yaml", ": : :", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grasp.yaml")
	if err := os.WriteFile(path, []byte("confidence_floor: 0.9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ConfidenceFloor != 0.9 {
		t.Errorf("ConfidenceFloor = %v, want 0.9", cfg.ConfidenceFloor)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
