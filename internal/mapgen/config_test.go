package mapgen

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate, got %v", err)
	}
}

func TestValidateRejectsBadProbabilities(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChanceWall = 0.7
	cfg.ChancePlain = 0.7
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error when chance_wall + chance_plain > 1")
	}
}

func TestValidateRejectsNegativeChanceWall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChanceWall = -0.1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for a negative chance_wall")
	}
}

func TestValidateRejectsBadBridgeBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBridgeLen = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for a non-positive min_bridge_len")
	}

	cfg = DefaultConfig()
	cfg.MinBridgeLen = 10
	cfg.MaxBridgeLen = 5
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error when max_bridge_len < min_bridge_len")
	}
}
