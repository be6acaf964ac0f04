package embedding

import (
	"context"
	"math"
	"testing"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := NewHashEmbedder(64)
	a, err := e.Embed(context.Background(), "vector search basics")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := e.Embed(context.Background(), "vector search basics")
	c, _ := e.Embed(context.Background(), "something else entirely")

	if len(a) != 64 {
		t.Fatalf("dimensions=%d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same text must embed identically")
		}
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts should embed differently")
	}
}

func TestHashEmbedder_UnitNorm(t *testing.T) {
	e := NewHashEmbedder(384)
	v, err := e.Embed(context.Background(), "normalize me")
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, x := range v {
		sum += float64(x * x)
	}
	if math.Abs(sum-1.0) > 1e-4 {
		t.Errorf("squared norm=%v, want 1", sum)
	}
}

func TestHashEmbedder_Batch(t *testing.T) {
	e := NewHashEmbedder(16)
	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 3 {
		t.Fatalf("got %d vectors", len(vecs))
	}
	single, _ := e.Embed(context.Background(), "b")
	for i := range single {
		if vecs[1][i] != single[i] {
			t.Fatal("batch embedding differs from single embedding")
		}
	}
}

func TestCache_Eviction(t *testing.T) {
	c := NewCache(2)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("a", []float32{1})
	c.Set("b", []float32{2})
	c.Get("a") // refresh a
	c.Set("c", []float32{3})

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was refreshed and should remain")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be present")
	}
	if c.Len() != 2 {
		t.Errorf("len=%d", c.Len())
	}
}

func TestCache_Overwrite(t *testing.T) {
	c := NewCache(4)
	c.Set("k", []float32{1})
	c.Set("k", []float32{9})
	v, ok := c.Get("k")
	if !ok || v[0] != 9 {
		t.Errorf("got %v, %v", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("len=%d", c.Len())
	}
}

func TestWordTokenizer(t *testing.T) {
	var tok wordTokenizer
	ids, mask, types := tok.Tokenize("hello world", 8)
	if len(ids) != 8 || len(mask) != 8 || len(types) != 8 {
		t.Fatalf("lengths=%d,%d,%d", len(ids), len(mask), len(types))
	}
	if ids[0] != 101 {
		t.Errorf("missing [CLS], ids[0]=%d", ids[0])
	}
	if mask[0] != 1 || mask[1] != 1 || mask[2] != 1 || mask[3] != 1 {
		t.Errorf("mask=%v", mask)
	}
	if ids[3] != 102 {
		t.Errorf("missing [SEP], ids[3]=%d", ids[3])
	}
	if mask[4] != 0 {
		t.Errorf("padding should be unmasked, mask=%v", mask)
	}
}

func TestSplitWords(t *testing.T) {
	got := splitWords("  one\ttwo\nthree ")
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
