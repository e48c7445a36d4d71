// Command permsweep normalizes filesystem ownership and permission bits
// under the working directory.
package main

import (
	"os"

	"permsweep/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
