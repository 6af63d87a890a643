// KernLog - Kernel Log Tailing Tool
//
// KernLog reads the kernel log ring buffer and streams new lines as they
// appear, without duplicating lines and without hammering the kernel
// interface.
package main

import (
	"os"

	"github.com/ccollicutt/kernlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
