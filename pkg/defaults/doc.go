// Package defaults provides centralized configuration constants for sysreport.
//
// Values here seed pkg/config when no configuration file overrides them.
//
// # Timeout Guidelines
//
//   - External commands (ipconfig, nvidia-smi): 15s each, so one hung tool
//     cannot stall the whole report indefinitely.
//   - CPU usage sampling: 1s window, matching the interactive nature of the tool.
package defaults
