package main

import (
	"fmt"
	"os"

	"github.com/tbekele/cardparty-backend/services"
)

// packcheck validates a pack index file the same way server startup does
// and prints per-pack card counts.
func main() {
	path := "packs.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	services.LoadPacks(path) // exits non-zero on a malformed index

	for _, p := range services.ListPacks() {
		official := ""
		if p.Official {
			official = " (official)"
		}
		fmt.Printf("%2d  %s%s — %d white, %d black\n", p.ID, p.Name, official, p.WhiteCount, p.BlackCount)
	}
}
