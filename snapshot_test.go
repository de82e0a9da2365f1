package symspell

import (
	"bytes"
	"errors"
	"testing"

	"github.com/morezian/symspell/internal/editdistance"
	"github.com/morezian/symspell/verbosity"
)

func buildSnapshotEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(2, 7, 2, 4, editdistance.DamerauOSA)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	e.CreateDictionaryEntry("apple", 1000)
	e.CreateDictionaryEntry("apples", 900)
	e.dict.UpsertBigram("apple pie", 50)
	return e
}

func TestToBytesFromBytesRoundTrip(t *testing.T) {
	e := buildSnapshotEngine(t)
	data, err := e.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes error: %v", err)
	}

	restored, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes error: %v", err)
	}

	if restored.MaxEditDistance() != e.MaxEditDistance() {
		t.Fatalf("restored MaxEditDistance = %d, want %d", restored.MaxEditDistance(), e.MaxEditDistance())
	}
	if restored.PrefixLength() != e.PrefixLength() {
		t.Fatalf("restored PrefixLength = %d, want %d", restored.PrefixLength(), e.PrefixLength())
	}
	if restored.WordCount() != e.WordCount() {
		t.Fatalf("restored WordCount = %d, want %d", restored.WordCount(), e.WordCount())
	}
	if restored.EntryCount() != e.EntryCount() {
		t.Fatalf("restored EntryCount = %d, want %d", restored.EntryCount(), e.EntryCount())
	}
	if count, ok := restored.dict.GetBigram("apple pie"); !ok || count != 50 {
		t.Fatalf("restored bigram = (%d, %v), want (50, true)", count, ok)
	}

	want, err := e.Lookup("aple", verbosity.Closest, 2, false, false)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	got, err := restored.Lookup("aple", verbosity.Closest, 2, false, false)
	if err != nil {
		t.Fatalf("Lookup on restored engine error: %v", err)
	}
	if len(want) != len(got) {
		t.Fatalf("restored Lookup returned %d suggestions, want %d", len(got), len(want))
	}
	for i := range want {
		if want[i].Term != got[i].Term || want[i].Distance != got[i].Distance || want[i].Count != got[i].Count {
			t.Fatalf("restored suggestion[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFromBytesRejectsBadMagic(t *testing.T) {
	if _, err := FromBytes([]byte("not a snapshot at all........")); err == nil {
		t.Fatalf("FromBytes with garbage input should fail")
	} else if !errors.Is(err, ErrDeserialization) {
		t.Fatalf("error = %v, want wrapped ErrDeserialization", err)
	}
}

func TestFromBytesRejectsTruncatedStream(t *testing.T) {
	e := buildSnapshotEngine(t)
	data, err := e.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes error: %v", err)
	}
	truncated := data[:len(data)/2]
	if _, err := FromBytes(truncated); err == nil {
		t.Fatalf("FromBytes with a truncated stream should fail")
	}
}

func TestToStreamWritesMagicHeader(t *testing.T) {
	e := buildSnapshotEngine(t)
	var buf bytes.Buffer
	if err := e.ToStream(&buf); err != nil {
		t.Fatalf("ToStream error: %v", err)
	}
	if got := buf.String()[:len(magicHeader)]; got != magicHeader {
		t.Fatalf("stream does not start with magic header, got %q", got)
	}
}
