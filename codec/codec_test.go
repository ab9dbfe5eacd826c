package codec

import (
	"testing"
)

type sample struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// JSON must round-trip struct values exactly.
func TestJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	c := JSON[sample]{}
	in := sample{Name: "s1", Values: []float64{1, 2.5, -3}}

	raw, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out sample
	if err := c.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Name != in.Name || len(out.Values) != len(in.Values) {
		t.Fatalf("round-trip mismatch: %+v vs %+v", out, in)
	}
}

// Unsupported values must fail on Marshal, not panic.
func TestJSON_MarshalError(t *testing.T) {
	t.Parallel()

	c := JSON[chan int]{}
	if _, err := c.Marshal(make(chan int)); err == nil {
		t.Fatal("Marshal of a channel must error")
	}
}

// Corrupt payloads must fail on Unmarshal.
func TestJSON_UnmarshalError(t *testing.T) {
	t.Parallel()

	c := JSON[sample]{}
	var out sample
	if err := c.Unmarshal([]byte("{not json"), &out); err == nil {
		t.Fatal("Unmarshal of corrupt bytes must error")
	}
}
