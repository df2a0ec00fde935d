//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package lex builds the relation graph that retrofitting pulls vectors along.
package lex

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Graph - word ==> ordered, de-duplicated neighbors; directed and not necessarily symmetric
type Graph struct {
	adj  map[string][]string
	seen map[string]map[string]struct{}
}

// NewGraph - an empty graph
func NewGraph() *Graph {
	return &Graph{
		adj:  make(map[string][]string),
		seen: make(map[string]map[string]struct{}),
	}
}

// Touch - make sure the word is a key even if it never gets a neighbor
func (g *Graph) Touch(word string) {
	if _, ok := g.adj[word]; ok {
		return
	}
	g.adj[word] = []string{}
	g.seen[word] = make(map[string]struct{})
}

// Add - record word ==> neighbor; repeats are ignored and first-seen order is kept
func (g *Graph) Add(word, neighbor string) bool {
	g.Touch(word)
	if _, dup := g.seen[word][neighbor]; dup {
		return false
	}
	g.seen[word][neighbor] = struct{}{}
	g.adj[word] = append(g.adj[word], neighbor)
	return true
}

// Has - is the word a key?
func (g *Graph) Has(word string) bool {
	_, ok := g.adj[word]
	return ok
}

// Neighbors - the neighbor list of a word; the slice belongs to the graph
func (g *Graph) Neighbors(word string) []string {
	return g.adj[word]
}

// Words - all keys, sorted so that every traversal is deterministic
func (g *Graph) Words() []string {
	k := maps.Keys(g.adj)
	slices.Sort(k)
	return k
}

// Len - number of keys
func (g *Graph) Len() int {
	return len(g.adj)
}

// Edges - number of word ==> neighbor pairs
func (g *Graph) Edges() int {
	n := 0
	for _, v := range g.adj {
		n += len(v)
	}
	return n
}
