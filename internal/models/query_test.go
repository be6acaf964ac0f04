package models

import (
	"errors"
	"testing"
)

func TestQueryRequest_Validate(t *testing.T) {
	q := &QueryRequest{CollectionIDs: []string{"demo"}, Query: "hello", TopK: 5}
	if err := q.Validate(); err != nil {
		t.Fatalf("valid query rejected: %v", err)
	}
}

func TestQueryRequest_ValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		q    QueryRequest
	}{
		{"empty query", QueryRequest{CollectionIDs: []string{"a"}, TopK: 5}},
		{"empty collections", QueryRequest{Query: "x", TopK: 5}},
		{"blank collection id", QueryRequest{CollectionIDs: []string{""}, Query: "x", TopK: 5}},
		{"zero top_k", QueryRequest{CollectionIDs: []string{"a"}, Query: "x"}},
		{"negative top_k", QueryRequest{CollectionIDs: []string{"a"}, Query: "x", TopK: -3}},
	}
	for _, tc := range cases {
		err := tc.q.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: error %v is not ErrInvalidArgument", tc.name, err)
		}
	}
}

func TestQueryRequest_ValidateCapsTopK(t *testing.T) {
	q := &QueryRequest{CollectionIDs: []string{"a"}, Query: "x", TopK: 10000}
	if err := q.Validate(); err != nil {
		t.Fatal(err)
	}
	if q.TopK != MaxTopK {
		t.Errorf("TopK=%d, want capped at %d", q.TopK, MaxTopK)
	}
}

func TestTranscript_UnmarshalDuration(t *testing.T) {
	var tr Transcript
	if err := tr.UnmarshalJSON([]byte(`{"text":"a","duration":600}`)); err != nil {
		t.Fatal(err)
	}
	if tr.Duration != 600 {
		t.Errorf("numeric duration=%v", tr.Duration)
	}
	if err := tr.UnmarshalJSON([]byte(`{"text":"a","duration":"599.5"}`)); err != nil {
		t.Fatal(err)
	}
	if tr.Duration != 599.5 {
		t.Errorf("string duration=%v", tr.Duration)
	}
	if err := tr.UnmarshalJSON([]byte(`{"text":"a","duration":"ten minutes"}`)); err == nil {
		t.Error("non-numeric duration should error")
	}
}
