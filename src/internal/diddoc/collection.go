// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package diddoc

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection maps DID URIs to documents and remembers insertion order.
// Setting an existing URI replaces its document in place.
type Collection struct {
	m *orderedmap.OrderedMap[string, *Document]
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{m: orderedmap.New[string, *Document]()}
}

// Set stores doc under uri.
func (c *Collection) Set(uri string, doc *Document) { c.m.Set(uri, doc) }

// Get returns the document stored under uri.
func (c *Collection) Get(uri string) (*Document, bool) { return c.m.Get(uri) }

// Len returns the number of documents.
func (c *Collection) Len() int { return c.m.Len() }

// All iterates over the collection in insertion order.
func (c *Collection) All() iter.Seq2[string, *Document] {
	return func(yield func(string, *Document) bool) {
		if c == nil {
			return
		}
		for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}
