// Package config provides the confsched configuration file.
//
// The file is YAML and stores the tick and frame rates, the storage backend,
// the name of the schedule to open and the key bindings of each mode. A
// missing file is not an error: Load returns Default().
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/confsched/config.yaml or $HOME/.config/confsched/config.yaml
//   - macOS: $HOME/.config/confsched/config.yaml
//   - Windows: %LOCALAPPDATA%\confsched\config.yaml
//
// # Example
//
//	version: 1
//	tick_rate: 4
//	frame_rate: 30
//	schedule: work
//	storage:
//	  backend: sqlite
//	keybindings:
//	  Schedule:
//	    "<g><g>": Help
//	    "<?>": ""        # unbind
//
// Bindings in the file are merged over the defaults.
package config
