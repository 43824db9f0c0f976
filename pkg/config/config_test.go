package config

import "testing"

func TestDisablingStrictLogicalNotIsRejected(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.SetFeature(FeatStrictLogicalNot, false); err == nil {
		t.Fatal("expected an error when disabling strict-logical-not")
	}
	if !cfg.IsFeatureEnabled(FeatStrictLogicalNot) {
		t.Error("expected strict-logical-not to remain enabled after a rejected disable")
	}
}

func TestWarningFlagsToggleIndividually(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.ProcessFlags([]string{"-Wno-overflow"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IsWarningEnabled(WarnOverflow) {
		t.Error("expected overflow warning to be disabled")
	}
	if !cfg.IsWarningEnabled(WarnUnreachableCode) {
		t.Error("expected unreachable-code warning to remain enabled")
	}
}

func TestWallEnablesEveryWarning(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.ProcessFlags([]string{"-Wno-overflow", "-Wno-unreachable-code", "-Wall"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsWarningEnabled(WarnOverflow) || !cfg.IsWarningEnabled(WarnUnreachableCode) {
		t.Error("expected -Wall to re-enable every warning")
	}
}

func TestProcessFlagsStopsOnFirstError(t *testing.T) {
	cfg := NewConfig()
	err := cfg.ProcessFlags([]string{"-Fno-strict-logical-not", "-Wno-overflow"})
	if err == nil {
		t.Fatal("expected an error from disabling strict-logical-not via a flag")
	}
	if !cfg.IsWarningEnabled(WarnOverflow) {
		t.Error("expected the flag after the failing one not to be applied")
	}
}
