package model

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeTips(t *testing.T) {
	cases := [][]string{
		{},
		{"one"},
		{"Check off each step", "Use a 5-minute timer", "Reward yourself"},
		{"a", "b", "c", "d", "e", "f"},
		{"quotes \"inside\"", "line\nbreak", "emoji 🎯", "", "  padded  ", "comma, separated"},
	}

	for _, tips := range cases {
		notes, err := EncodeTips(tips)
		if err != nil {
			t.Fatalf("EncodeTips(%q): %v", tips, err)
		}
		got, err := DecodeTips(notes)
		if err != nil {
			t.Fatalf("DecodeTips(%q): %v", notes, err)
		}
		if !reflect.DeepEqual(got, tips) {
			t.Errorf("round trip mismatch: want %q, got %q", tips, got)
		}
	}
}

func TestEncodeTipsNil(t *testing.T) {
	notes, err := EncodeTips(nil)
	if err != nil {
		t.Fatalf("EncodeTips(nil): %v", err)
	}
	if notes != "[]" {
		t.Errorf("expected [], got %q", notes)
	}
}

func TestDecodeTips(t *testing.T) {
	t.Run("empty notes", func(t *testing.T) {
		got, err := DecodeTips("")
		if err != nil {
			t.Fatalf("DecodeTips: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("json null", func(t *testing.T) {
		got, err := DecodeTips("null")
		if err != nil {
			t.Fatalf("DecodeTips: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("free text notes", func(t *testing.T) {
		got, err := DecodeTips("remember the milk")
		if err == nil {
			t.Fatal("expected error for non-JSON notes")
		}
		if len(got) != 0 {
			t.Errorf("expected empty slice on error, got %q", got)
		}
	})
}
