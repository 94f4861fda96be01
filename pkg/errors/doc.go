// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The codes mirror how a report run treats failures:
//
//   - ErrCodeDependencyUnavailable aborts the run before any collection.
//   - ErrCodeCommandFailure and ErrCodeStoreAccess degrade one report section.
//   - ErrCodeRecordIncomplete drops a single entity silently.
//   - ErrCodeUnsupportedEnumeration triggers the per-key enumeration fallback.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeCommandFailure,
//	    "failed to run command",
//	    cause,
//	    map[string]any{
//	        "command": "nvidia-smi",
//	    },
//	)
//
//	if errors.IsFatal(err) {
//	    os.Exit(1)
//	}
package errors
