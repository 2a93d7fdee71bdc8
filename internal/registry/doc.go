// Package registry provides user configuration management for the area
// configuration generator.
//
// This package manages a YAML-based configuration file that stores generation
// history per area along with application preferences such as the default
// output directory. The configuration follows OS-specific conventions for
// storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/areacfg/config.yaml or $HOME/.config/areacfg/config.yaml
//   - macOS: $HOME/.config/areacfg/config.yaml
//   - Windows: %LOCALAPPDATA%\areacfg\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	reg, err := registry.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a completed generation
//	reg.RecordGeneration("study", "Study", "study",
//	    []string{"computer"}, "", "/home/user/areas/study.yaml", 12)
//
//	// Save changes atomically
//	if err := reg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package registry
