// Command lippdemo bulk-loads an index from a small generated dataset,
// inserts more keys, looks every bulk-loaded key back up, and prints the
// result. Grounded on
// alex-go/main.go, replacing its values.txt file load
// (alex-go/utils/FileValuesParser.go) with an in-process generator since
// this module ships no sample data file.
package main

import (
	"fmt"
	"os"

	"lippgo/index"
	"lippgo/shared"
)

func main() {
	cfg := index.DefaultConfig()
	idx := index.New[int, int](cfg)

	const n = 2000
	pairs := make([]shared.Pair[int, int], n)
	for i := 0; i < n; i++ {
		pairs[i] = shared.Pair[int, int]{Key: i * 3, Value: i}
	}

	if err := idx.BulkLoad(pairs); err != nil {
		fmt.Fprintln(os.Stderr, "bulk load failed:", err)
		os.Exit(1)
	}

	for i := n; i < n+500; i++ {
		if err := idx.Insert(i*3+1, i); err != nil {
			fmt.Fprintln(os.Stderr, "insert failed:", err)
			os.Exit(1)
		}
	}

	missing := 0
	for i := 0; i < n; i++ {
		key := i * 3
		value, ok := idx.At(key)
		if !ok || value != i {
			missing++
			fmt.Printf("❌ key %d: got (%d, %v)\n", key, value, ok)
		}
	}
	fmt.Printf("checked %d keys, %d mismatches\n", n, missing)

	if err := idx.Verify(); err != nil {
		fmt.Fprintln(os.Stderr, "verify failed:", err)
		os.Exit(1)
	}

	if !cfg.Quiet {
		idx.PrintStats(os.Stdout)
	}
}
