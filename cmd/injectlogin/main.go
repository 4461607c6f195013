// Command injectlogin generates the login target accessor for the field
// marked with //bbgo:injectlogin.
//
// Typical use is a go:generate directive at the module root:
//
//	//go:generate go run github.com/mpyw/injectlogin/cmd/injectlogin ./...
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/mpyw/injectlogin/internal/logger"
)

func main() {
	err := newRootCmd().Execute()
	logger.Cleanup()

	if err != nil {
		fmt.Fprintf(os.Stderr, "injectlogin: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
