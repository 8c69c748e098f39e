package index

import (
	"fmt"
	"testing"
)

func BenchmarkInsert1kTo1m(b *testing.B) {
	for n := 1_000; n <= 1_000_000; n *= 10 {
		keys := generateRandomKeys(n)
		b.Run(fmt.Sprintf("Insert_%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				idx := New[int, int](DefaultConfig())
				for j, k := range keys {
					if err := idx.Insert(k, j); err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}

func BenchmarkLookup1kTo1m(b *testing.B) {
	for n := 1_000; n <= 1_000_000; n *= 10 {
		keys := generateRandomKeys(n)
		idx := New[int, int](DefaultConfig())
		for j, k := range keys {
			if err := idx.Insert(k, j); err != nil {
				b.Fatal(err)
			}
		}

		b.Run(fmt.Sprintf("Lookup_%d", n), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = idx.At(keys[i%len(keys)])
			}
		})
	}
}
