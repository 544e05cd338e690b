package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Charm is ready for listing
	ExitNotReady = 1 // One or more criteria failed or need manual review
	ExitError    = 2 // Configuration or runtime error
)

// NotReadyError indicates that the evaluation ran successfully, but the
// charm did not come out ready for listing.
type NotReadyError struct {
	Message string
}

func (e *NotReadyError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var notReadyErr *NotReadyError
		if errors.As(err, &notReadyErr) {
			os.Exit(ExitNotReady)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
