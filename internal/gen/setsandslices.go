//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"slices"

	"golang.org/x/exp/maps"
)

//
// SETS AND SLICES
//

// ToSet - returns a blank map of a slice
func ToSet[T comparable](sl []T) map[T]struct{} {
	m := make(map[T]struct{}, len(sl))
	for i := 0; i < len(sl); i++ {
		m[sl[i]] = struct{}{}
	}
	return m
}

// Unique - return only the unique items from a slice; first-seen order is kept
func Unique[T comparable](s []T) []T {
	// can't use slices.Compact because that only looks as consecutive repeats: [a, a, b, a] -> [a, b, a]
	seen := make(map[T]struct{}, len(s))
	result := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// SetSubtraction - aa minus anything found in bb
func SetSubtraction[T comparable](aa []T, bb []T) []T {
	// 	aa := []string{"a", "b", "c", "d", "g", "h"}
	//	bb := []string{"a", "b", "e", "f", "g"}
	//	dd := SetSubtraction(aa, bb)
	//  [c d h]
	drop := ToSet(bb)
	return slices.DeleteFunc(slices.Clone(aa), func(c T) bool {
		_, ok := drop[c]
		return ok
	})
}

// StringMapKeysIntoSlice - convert map[string]T to a sorted []string
func StringMapKeysIntoSlice[T any](mp map[string]T) []string {
	sl := maps.Keys(mp)
	slices.Sort(sl)
	return sl
}

// ChunkSlice - turn a slice into a slice of slices of size N; thanks to https://stackoverflow.com/questions/35179656/slice-chunking-in-go
func ChunkSlice[T any](items []T, size int) (chunks [][]T) {
	if size < 1 {
		size = 1
	}
	for size < len(items) {
		items, chunks = items[size:], append(chunks, items[0:size:size])
	}
	return append(chunks, items)
}

// ChunkCount - chunk size that splits n items among w workers
func ChunkCount(n int, w int) int {
	if w < 1 {
		w = 1
	}
	size := n / w
	if n%w != 0 {
		size++
	}
	if size < 1 {
		size = 1
	}
	return size
}
