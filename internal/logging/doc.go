// Package logging provides structured logging for confsched.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent unless a level is passed with --log-level or set in the
// CONFSCHED_LOG_LEVEL environment variable, because the TUI owns the terminal
// and stray output would corrupt the screen.
//
// # Configuration
//
// Initialize logging at startup with a file destination:
//
//	if err := logging.Initialize("debug", "/home/me/.config/confsched/confsched.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Specialized Logging
//
//	logging.LogBinding([]string{"g", "g"}, action, mode)  // key sequence matched
//	logging.LogAction(action, mode)                       // action drained from the queue
//	logging.LogMutation("update", 1, 0, err)              // schedule change
//	logging.LogStore("save", "yaml", "default", err)      // persistence result
package logging
