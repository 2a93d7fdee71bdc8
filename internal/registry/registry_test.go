package registry

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "areacfg"
	if !strings.Contains(configDir, "areacfg") {
		t.Errorf("GetConfigDir() = %v, should contain 'areacfg'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Areas == nil {
		t.Error("NewRegistry().Areas should not be nil")
	}

	if reg.Preferences == nil {
		t.Error("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.DefaultApplianceType != "appliance" {
		t.Errorf("NewRegistry().Preferences.DefaultApplianceType = %v, want 'appliance'", reg.Preferences.DefaultApplianceType)
	}
}

func TestRegistryEnsureArea(t *testing.T) {
	reg := NewRegistry()

	// First call should create the record
	record1 := reg.EnsureArea("study")
	if record1 == nil {
		t.Fatal("EnsureArea() returned nil")
	}

	// Second call should return same record
	record2 := reg.EnsureArea("study")
	if record1 != record2 {
		t.Error("EnsureArea() should return same instance for same slug")
	}

	// Different slug should create new record
	record3 := reg.EnsureArea("kitchen")
	if record1 == record3 {
		t.Error("EnsureArea() should create new instance for different slug")
	}
}

func TestRegistryRecordGeneration(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.RecordGeneration("master_bedroom", "Master Bedroom", "bedroom",
		[]string{"tv"}, "", "/home/user/areas/master_bedroom.yaml", 9)
	after := time.Now()

	record := reg.GetArea("master_bedroom")
	if record == nil {
		t.Fatal("Record should exist after RecordGeneration()")
	}

	if record.DisplayName != "Master Bedroom" {
		t.Errorf("DisplayName = %v, want 'Master Bedroom'", record.DisplayName)
	}
	if record.AreaType != "bedroom" {
		t.Errorf("AreaType = %v, want 'bedroom'", record.AreaType)
	}
	if len(record.Devices) != 1 || record.Devices[0] != "tv" {
		t.Errorf("Devices = %v, want [tv]", record.Devices)
	}
	if record.OutputPath != "/home/user/areas/master_bedroom.yaml" {
		t.Errorf("OutputPath = %v", record.OutputPath)
	}
	if record.EntityCount != 9 {
		t.Errorf("EntityCount = %v, want 9", record.EntityCount)
	}
	if record.LastGenerated.Before(before) || record.LastGenerated.After(after) {
		t.Errorf("LastGenerated = %v, should be between %v and %v", record.LastGenerated, before, after)
	}
}

func TestRegistryOutputDirPreference(t *testing.T) {
	reg := NewRegistry()

	if got := reg.OutputDirOr("/tmp/fallback"); got != "/tmp/fallback" {
		t.Errorf("OutputDirOr() = %v, want fallback with no preference set", got)
	}

	reg.SetOutputDir("/home/user/areas")
	if got := reg.OutputDirOr("/tmp/fallback"); got != "/home/user/areas" {
		t.Errorf("OutputDirOr() = %v, want stored preference", got)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	// Use a temporary directory for testing
	tmpDir, err := os.MkdirTemp("", "areacfg-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	// Create and populate registry
	reg := NewRegistry()
	reg.SetOutputDir("/home/user/areas")
	reg.RecordGeneration("study", "Study", "study",
		[]string{"computer", "tv"}, "", "/home/user/areas/study.yaml", 14)

	// Manually save to the test path
	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}
	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Load from the test path
	loadedReg, err := loadRegistryFromFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	// Verify loaded data
	record := loadedReg.GetArea("study")
	if record == nil {
		t.Fatal("Record should exist in loaded registry")
	}
	if record.DisplayName != "Study" {
		t.Errorf("Loaded display name = %v, want 'Study'", record.DisplayName)
	}
	if len(record.Devices) != 2 || record.Devices[0] != "computer" || record.Devices[1] != "tv" {
		t.Errorf("Loaded devices = %v, want [computer tv]", record.Devices)
	}
	if loadedReg.OutputDirOr("") != "/home/user/areas" {
		t.Errorf("Loaded output dir = %v, want '/home/user/areas'", loadedReg.OutputDirOr(""))
	}
}

func TestLoadRegistryRejectsUnknownVersion(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "areacfg-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("version: 99\n"), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := loadRegistryFromFile(path); err == nil {
		t.Error("loadRegistryFromFile() should reject unsupported versions")
	}
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}

func BenchmarkEnsureArea(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureArea("study")
	}
}
