package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"render3d/internal/scripting"
)

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Rotator":     "rotator",
		"EnemyChaser": "enemy_chaser",
		"HUD":         "h_u_d",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunWritesLoadableScript(t *testing.T) {
	dir := t.TempDir()
	if err := run([]string{"-dir", dir, "EnemyChaser"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	path := filepath.Join(dir, "enemy_chaser.lua")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("script not written: %v", err)
	}
	if !strings.Contains(string(data), "-- EnemyChaser") {
		t.Errorf("template name not substituted:\n%s", data)
	}

	vm := scripting.NewVM(zap.NewNop())
	defer vm.Close()
	if _, err := vm.LoadFile(path); err != nil {
		t.Errorf("generated script does not load: %v", err)
	}

	if err := run([]string{"-dir", dir, "EnemyChaser"}); err == nil {
		t.Error("expected an error for an existing script")
	}
}

func TestRunRejectsBadNames(t *testing.T) {
	for _, args := range [][]string{{}, {"lower"}} {
		if err := run(append([]string{"-dir", t.TempDir()}, args...)); err == nil {
			t.Errorf("run(%v) should fail", args)
		}
	}
}
