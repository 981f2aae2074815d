// Command vcctl works with owner DIDs, degree credentials and vault records
// offline, without a wallet or the vault API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
