// Package runner executes external commands and returns their captured
// standard output as text.
//
// Commands are split on whitespace and executed directly, without a shell, so
// the same command strings work on Windows (ipconfig) and Unix (nvidia-smi).
// Every invocation is bounded by a timeout; a hung tool degrades only the
// section that depends on it.
//
// Output that is not valid UTF-8 is decoded with golang.org/x/text: UTF-16
// with a byte order mark is detected automatically, anything else is decoded
// from a legacy code page (IBM437 unless configured otherwise), which is what
// console tools such as ipconfig emit on most Windows installations.
//
// # Usage
//
//	r := runner.NewLocalRunner(runner.WithTimeout(10 * time.Second))
//	out, err := r.Run(ctx, "ipconfig /all")
//	if err != nil {
//	    // errors.ErrCodeCommandFailure: degrade the section
//	}
package runner
