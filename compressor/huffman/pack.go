package huffman

import (
	"bytes"
	"fmt"
	"strings"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Pack encodes the source text as the concatenation of each symbol's code,
// packed most-significant-bit first into bytes. When the total bit count is
// not a multiple of 8, the trailing remainder bits are relocated to the
// front of the output behind a single 1 marker bit, left-padded with zeros
// to a whole byte; an exactly aligned stream carries no marker byte at all.
// Without the relocation a decoder could not tell trailing zero padding
// apart from genuine '0' code bits.
func Pack(source string, table map[rune]string) ([]byte, error) {
	return pack(source, table, nil)
}

func pack(source string, table map[rune]string, bar *pb.ProgressBar) ([]byte, error) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	totalBits := 0
	for _, symbol := range source {
		code, ok := table[symbol]
		if !ok {
			return nil, fmt.Errorf("%w: %q has no code", ErrUnknownSymbol, symbol)
		}
		for i := 0; i < len(code); i++ {
			if err := bw.WriteBool(code[i] == '1'); err != nil {
				return nil, err
			}
		}
		totalBits += len(code)
		if bar != nil {
			bar.Increment()
		}
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	packed := buf.Bytes()
	assert.Assertf(len(packed) == (totalBits+7)/8, "wrote %d bytes for %d bits", len(packed), totalBits)
	remainder := totalBits % 8
	if remainder == 0 {
		return packed, nil
	}
	// Close zero-padded the low bits of the final byte; rescue the real
	// remainder bits and move them behind the marker bit up front.
	last := packed[len(packed)-1]
	marker := byte(1<<remainder) | last>>(8-remainder)
	return append([]byte{marker}, packed[:len(packed)-1]...), nil
}

// Unpack decodes a packed payload against the tree its encoder was built
// from. The tree's leaf weights are the original frequency counts, so the
// decoder knows both how many symbols to emit (the root weight) and how many
// payload bits are meaningful (frequency times code length, summed), which
// settles whether a leading marker byte is present.
func Unpack(payload []byte, tree Tree) (string, error) {
	if tree == nil {
		return "", fmt.Errorf("%w: nil tree", ErrInvalidInput)
	}
	totalSymbols := tree.Frequency()
	totalBits := packedBits(tree)
	if totalSymbols == 0 {
		if len(payload) != 0 {
			return "", fmt.Errorf("%w: payload present for a zero-count table", ErrCorruptPayload)
		}
		return "", nil
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: empty payload, expected %d bits", ErrCorruptPayload, totalBits)
	}
	src, err := newBitSource(payload, totalBits)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for emitted := 0; emitted < totalSymbols; emitted++ {
		symbol, err := decodeSymbol(src, tree)
		if err != nil {
			return "", err
		}
		out.WriteRune(symbol)
	}
	if src.read != totalBits {
		return "", fmt.Errorf("%w: %d of %d bits consumed", ErrCorruptPayload, src.read, totalBits)
	}
	return out.String(), nil
}

// packedBits is the exact payload bit length implied by the tree: each
// leaf's frequency times its code length. A lone leaf codes as "0", one bit
// per occurrence.
func packedBits(tree Tree) int {
	if l, ok := tree.(leaf); ok {
		return l.freq
	}
	return weightedDepth(tree, 0)
}

func weightedDepth(tree Tree, depth int) int {
	switch t := tree.(type) {
	case leaf:
		return t.freq * depth
	case node:
		return weightedDepth(t.left, depth+1) + weightedDepth(t.right, depth+1)
	}
	return 0
}

func decodeSymbol(src *bitSource, tree Tree) (rune, error) {
	if l, ok := tree.(leaf); ok {
		// Degenerate single-leaf tree: the root is the leaf and every
		// occurrence was encoded as a single "0" bit.
		bit, err := src.next()
		if err != nil {
			return 0, err
		}
		if bit {
			return 0, fmt.Errorf("%w: 1 bit in a single-symbol stream", ErrCorruptPayload)
		}
		return l.symbol, nil
	}
	cur := tree
	for {
		n, ok := cur.(node)
		if !ok {
			return cur.(leaf).symbol, nil
		}
		bit, err := src.next()
		if err != nil {
			return 0, err
		}
		if bit {
			cur = n.right
		} else {
			cur = n.left
		}
	}
}

// bitSource replays the logical bit stream of a packed payload: the whole
// bytes first, then the remainder bits rescued from the marker byte, which
// belong at the tail of the stream.
type bitSource struct {
	body     *bitio.Reader
	bodyBits int
	read     int
	tail     byte
	tailBits int
}

func newBitSource(payload []byte, totalBits int) (*bitSource, error) {
	src := new(bitSource)
	body := payload
	if remainder := totalBits % 8; remainder != 0 {
		marker := payload[0]
		if marker>>remainder != 1 {
			return nil, fmt.Errorf("%w: bad marker byte %#02x for %d remainder bits", ErrCorruptPayload, marker, remainder)
		}
		src.tail = marker & (1<<remainder - 1)
		src.tailBits = remainder
		body = payload[1:]
	}
	if len(body)*8+src.tailBits != totalBits {
		return nil, fmt.Errorf("%w: payload carries %d bits, header promises %d", ErrCorruptPayload, len(body)*8+src.tailBits, totalBits)
	}
	src.body = bitio.NewReader(bytes.NewReader(body))
	src.bodyBits = len(body) * 8
	return src, nil
}

func (src *bitSource) next() (bool, error) {
	switch {
	case src.read < src.bodyBits:
		src.read++
		return src.body.ReadBool()
	case src.read < src.bodyBits+src.tailBits:
		shift := uint(src.bodyBits + src.tailBits - src.read - 1)
		src.read++
		return src.tail>>shift&1 == 1, nil
	}
	return false, fmt.Errorf("%w: bit stream exhausted", ErrCorruptPayload)
}
