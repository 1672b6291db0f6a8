// Command gf-server receives supplier price lines over HTTP and serves a
// read-only mobile UI to browse them.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
