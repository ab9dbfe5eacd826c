// Package codec defines how values are serialized for the cold tier.
//
// The cold tier stores a "partialized" form: the cache applies an optional
// reduction hook (Options.Partialize) first, then one of these codecs turns
// the result into bytes. Swapping the codec changes the wire form without
// touching cache logic.
package codec

import "encoding/json"

// Codec serializes values of type V for durable storage.
// Implementations must be safe for concurrent use.
type Codec[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(raw []byte, v *V) error
}

// JSON is the default codec. It round-trips any value encoding/json can
// handle; unsupported values (channels, funcs, cycles) surface as a
// Marshal error on the write path.
type JSON[V any] struct{}

// Marshal encodes v as JSON.
func (JSON[V]) Marshal(v V) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes raw into v.
func (JSON[V]) Unmarshal(raw []byte, v *V) error { return json.Unmarshal(raw, v) }

// Compile-time check with a representative instantiation.
var _ Codec[any] = JSON[any]{}
