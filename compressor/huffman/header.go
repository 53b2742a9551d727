package huffman

import (
	"bytes"
	"fmt"
	"slices"
	"unicode/utf8"
)

const (
	fieldSeparator = '-'
	pairSeparator  = ','

	// counts are int-sized, so their big-endian form never needs more
	maxCountBytes = 8
)

// payloadSentinel separates the frequency header from the packed payload.
var payloadSentinel = []byte("\n**\n")

// EncodeHeader serializes a frequency table as symbol-count pairs in
// ascending symbol order, terminated by the payload sentinel. Each pair is
// the symbol's UTF-8 bytes, a '-', and the count as a big-endian integer
// with no leading zero bytes (a count of 0 still takes one byte). Pairs are
// joined by ',' with no trailing separator.
func EncodeHeader(symbolFreq map[rune]int) []byte {
	var keys []rune
	for r := range symbolFreq {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	var header bytes.Buffer
	for i, key := range keys {
		if i > 0 {
			header.WriteByte(pairSeparator)
		}
		header.WriteRune(key)
		header.WriteByte(fieldSeparator)
		header.Write(bigEndianCount(symbolFreq[key]))
	}
	header.Write(payloadSentinel)
	return header.Bytes()
}

func bigEndianCount(n int) []byte {
	if n == 0 {
		return []byte{0}
	}
	var out []byte
	for n > 0 {
		out = append(out, byte(n))
		n >>= 8
	}
	slices.Reverse(out)
	return out
}

// DecodeHeader splits serialized bytes at the payload sentinel and rebuilds
// the frequency table from the pairs before it, returning the remaining
// payload bytes. Count bytes can collide with the separator values (44 is
// ','), so pair parsing backtracks rather than splitting blindly, and a
// count can even contain the sentinel bytes themselves. A sentinel candidate
// is therefore only accepted when the bytes after it are exactly the payload
// its frequencies imply, or when it is the final candidate (the bare-header
// case, where whatever follows is the caller's business); otherwise the scan
// moves on to the next candidate.
func DecodeHeader(data []byte) (map[rune]int, []byte, error) {
	searchFrom := 0
	sawSentinel := false
	for {
		i := bytes.Index(data[searchFrom:], payloadSentinel)
		if i < 0 {
			if sawSentinel {
				return nil, nil, fmt.Errorf("%w: header pairs do not parse", ErrMalformedHeader)
			}
			return nil, nil, fmt.Errorf("%w: payload sentinel not found", ErrMalformedHeader)
		}
		sawSentinel = true
		end := searchFrom + i
		rest := data[end+len(payloadSentinel):]
		if symbolFreq, ok := parsePairs(data[:end]); ok {
			if payloadFits(symbolFreq, rest) || !bytes.Contains(rest, payloadSentinel) {
				return symbolFreq, rest, nil
			}
		}
		searchFrom = end + 1
	}
}

// payloadFits reports whether payload has exactly the length (and, for an
// unaligned stream, the marker byte) that packing symbolFreq's symbols would
// produce.
func payloadFits(symbolFreq map[rune]int, payload []byte) bool {
	if len(symbolFreq) == 0 {
		return len(payload) == 0
	}
	tree, err := FromFrequencies(symbolFreq)
	if err != nil {
		return false
	}
	totalBits := packedBits(tree)
	if totalBits < 0 {
		return false
	}
	if r := totalBits % 8; r != 0 {
		return len(payload) == totalBits/8+1 && payload[0]>>r == 1
	}
	return len(payload) == totalBits/8
}

func parsePairs(data []byte) (map[rune]int, bool) {
	symbolFreq := make(map[rune]int)
	if len(data) == 0 {
		return symbolFreq, true
	}
	if !parsePair(data, symbolFreq) {
		return nil, false
	}
	return symbolFreq, true
}

// parsePair consumes one `symbol '-' count` pair and recurses on the rest.
// The count's length is ambiguous when its bytes contain ',', so the
// shortest count that lets the remainder parse wins; the encoder emits
// minimal big-endian counts, so a multi-byte count never starts with 0.
func parsePair(data []byte, symbolFreq map[rune]int) bool {
	symbol, size := utf8.DecodeRune(data)
	if symbol == utf8.RuneError && size <= 1 {
		return false
	}
	data = data[size:]
	if len(data) == 0 || data[0] != fieldSeparator {
		return false
	}
	data = data[1:]
	for countLen := 1; countLen <= maxCountBytes && countLen <= len(data); countLen++ {
		if countLen > 1 && data[0] == 0 {
			break
		}
		count := 0
		for _, b := range data[:countLen] {
			count = count<<8 | int(b)
		}
		rest := data[countLen:]
		if len(rest) == 0 {
			symbolFreq[symbol] = count
			return true
		}
		if rest[0] != pairSeparator {
			continue
		}
		if parsePair(rest[1:], symbolFreq) {
			symbolFreq[symbol] = count
			return true
		}
	}
	return false
}
