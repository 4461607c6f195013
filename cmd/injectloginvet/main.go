// Command injectloginvet reports unusable //bbgo:injectlogin markers.
// Use it standalone or with go vet -vettool.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/injectlogin"
)

func main() {
	singlechecker.Main(injectlogin.Analyzer)
}
