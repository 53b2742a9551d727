package huffman

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestEncodeHeaderSinglePair(t *testing.T) {
	header := EncodeHeader(map[rune]int{'a': 12})
	expect := []byte("a-\x0c\n**\n")
	if !bytes.Equal(header, expect) {
		t.Errorf("wrong header:\n\texpect: %q\n\tactual: %q", expect, header)
	}
}

func TestEncodeHeaderMultiplePairs(t *testing.T) {
	header := EncodeHeader(map[rune]int{'b': 1, 'a': 300})
	// ascending symbol order; 300 is big-endian 0x01 0x2C
	expect := []byte("a-\x01\x2c,b-\x01\n**\n")
	if !bytes.Equal(header, expect) {
		t.Errorf("wrong header:\n\texpect: %q\n\tactual: %q", expect, header)
	}
}

func headerRoundTrip(t *testing.T, symbolFreq map[rune]int) {
	t.Helper()
	decoded, rest, err := DecodeHeader(EncodeHeader(symbolFreq))
	if err != nil {
		t.Fatalf("DecodeHeader failed for %v: %v", symbolFreq, err)
	}
	if !reflect.DeepEqual(decoded, symbolFreq) {
		t.Errorf("round trip mismatch:\n\texpect: %v\n\tactual: %v", symbolFreq, decoded)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining bytes, got %q", rest)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	for _, symbolFreq := range []map[rune]int{
		{},
		{'a': 12},
		{'a': 0},
		{'a': 3, 'b': 4, 'c': 70000},
		{'-': 5, ',': 7},
		{'a': 44, 'b': 45},
		{'a': 300, 'b': 11308},
		{'☃': 2, 'é': 9},
		{'\n': 3, '*': 2},
	} {
		headerRoundTrip(t, symbolFreq)
	}
}

func TestHeaderRoundTripCountsEmbeddingSentinel(t *testing.T) {
	// 0x0A2A2A0A is the sentinel "\n**\n" read as a big-endian count, so a
	// pseudo-sentinel sits inside the header; the bytes before it even parse
	// as a single over-long count for '-'. The decoder must skip that
	// candidate and keep scanning.
	headerRoundTrip(t, map[rune]int{'a': 0x0A2A2A0A, 'b': 0x2C, '-': 0x2C2C})
}

func TestDecodeHeaderSkipsPseudoSentinel(t *testing.T) {
	symbolFreq := map[rune]int{'a': 0x0A2A2A0A, 'b': 0x2C, '-': 0x2C2C}
	payload := []byte{0x01, 0x02}
	decoded, rest, err := DecodeHeader(append(EncodeHeader(symbolFreq), payload...))
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if !reflect.DeepEqual(decoded, symbolFreq) {
		t.Errorf("wrong frequencies:\n\texpect: %v\n\tactual: %v", symbolFreq, decoded)
	}
	if !bytes.Equal(rest, payload) {
		t.Errorf("wrong payload bytes:\n\texpect: %#v\n\tactual: %#v", payload, rest)
	}
}

func TestHeaderRoundTripFromText(t *testing.T) {
	headerRoundTrip(t, CountFrequencies("header, footer - and a\nnewline ** too"))
}

func TestDecodeHeaderReturnsPayload(t *testing.T) {
	payload := []byte{0xAB, 0xCD, 0x2C}
	data := append(EncodeHeader(map[rune]int{'x': 9}), payload...)
	symbolFreq, rest, err := DecodeHeader(data)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if !reflect.DeepEqual(symbolFreq, map[rune]int{'x': 9}) {
		t.Errorf("wrong frequencies: %v", symbolFreq)
	}
	if !bytes.Equal(rest, payload) {
		t.Errorf("wrong payload bytes:\n\texpect: %#v\n\tactual: %#v", payload, rest)
	}
}

func TestDecodeHeaderMissingSentinel(t *testing.T) {
	_, _, err := DecodeHeader([]byte("a-\x0c"))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestDecodeHeaderBadPair(t *testing.T) {
	_, _, err := DecodeHeader([]byte("a\x0c\n**\n"))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}
