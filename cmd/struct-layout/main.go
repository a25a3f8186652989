// Command struct-layout extracts the exact in-memory layout of a named
// struct or union and writes it in a portable textual form.
//
// Layouts are read from Go packages, from the DWARF debug information of
// ELF objects, or from YAML composite declarations:
//
//	struct-layout extract --source dwarf --struct sockaddr_in -o sockaddr_in.layout libnet.so
//	struct-layout check --source go --struct Header --baseline header.layout ./wire
//	struct-layout show sockaddr_in.layout
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
