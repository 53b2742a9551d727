package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	pb "github.com/cheggaaa/pb/v3"
)

// Error taxonomy for a single encode or decode call. Every failure is
// terminal for that call: a corrupt compressed file cannot be repaired
// without the original source, so nothing is retried or guessed.
var (
	ErrInvalidInput    = errors.New("huffman: invalid input")
	ErrUnknownSymbol   = errors.New("huffman: unknown symbol")
	ErrCorruptPayload  = errors.New("huffman: corrupt payload")
	ErrMalformedHeader = errors.New("huffman: malformed header")
)

// CountFrequencies tallies how often each symbol occurs in the text.
func CountFrequencies(text string) map[rune]int {
	symbolFreq := make(map[rune]int)
	for _, c := range text {
		symbolFreq[c]++
	}
	return symbolFreq
}

// Encode compresses content into the on-disk format: the frequency header,
// the payload sentinel, then the packed payload. Empty content encodes to a
// bare sentinel.
func Encode(content []byte) ([]byte, error) {
	return encode(content, nil)
}

func encode(content []byte, bar *pb.ProgressBar) ([]byte, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8 text", ErrInvalidInput)
	}
	contentString := string(content)
	symbolFreq := CountFrequencies(contentString)
	header := EncodeHeader(symbolFreq)
	if len(symbolFreq) == 0 {
		return header, nil
	}
	tree, err := FromFrequencies(symbolFreq)
	if err != nil {
		return nil, err
	}
	payload, err := pack(contentString, CodeTable(tree), bar)
	if err != nil {
		return nil, err
	}
	return append(header, payload...), nil
}

// Decode reverses Encode: rebuild the tree from the header frequencies and
// walk the payload back into the original content.
func Decode(data []byte) ([]byte, error) {
	symbolFreq, payload, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if len(symbolFreq) == 0 {
		if len(payload) != 0 {
			return nil, fmt.Errorf("%w: payload after an empty header", ErrCorruptPayload)
		}
		return []byte{}, nil
	}
	tree, err := FromFrequencies(symbolFreq)
	if err != nil {
		return nil, err
	}
	text, err := Unpack(payload, tree)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

type CompressionWriter struct {
	w io.Writer
}

type decompressionCore struct {
	isInputBufferClosed bool
	lock                sync.Mutex
	inputBuffer         io.ReadWriter
	outputBuffer        io.ReadWriter
}

type DecompressionWriter struct {
	core *decompressionCore
}

type DecompressionReader struct {
	core *decompressionCore
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	bar := pb.New(utf8.RuneCount(data))
	bar.Set(pb.Bytes, true)
	bar.Start()
	compressed, err := encode(data, bar)
	bar.Finish()
	if err != nil {
		return 0, err
	}
	if _, err := cw.w.Write(compressed); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (cw *CompressionWriter) Close() error {
	return nil
}

// NewWriter wraps w so that each Write compresses its data as one whole
// document before passing it on.
func NewWriter(writer io.Writer) io.WriteCloser {
	newCW := new(CompressionWriter)
	newCW.w = writer
	return newCW
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if !dr.core.isInputBufferClosed {
		return 0, errors.New("huffman: input buffer not closed")
	}
	return dr.core.outputBuffer.Read(data)
}

func (dr *DecompressionReader) Close() error {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if buf, ok := dr.core.inputBuffer.(*bytes.Buffer); ok {
		buf.Reset()
		return nil
	}
	return errors.New("huffman: underlying io.ReadWriter is not *bytes.Buffer")
}

func (dw *DecompressionWriter) Write(data []byte) (int, error) {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	return dw.core.inputBuffer.Write(data)
}

// Close signals that the whole compressed document has been written and
// decodes it into the reader side's buffer.
func (dw *DecompressionWriter) Close() error {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	dw.core.isInputBufferClosed = true
	compressedData, err := io.ReadAll(dw.core.inputBuffer)
	if err != nil {
		return err
	}
	decompressedData, err := Decode(compressedData)
	if err != nil {
		return err
	}
	if _, err = dw.core.outputBuffer.Write(decompressedData); err != nil {
		return err
	}
	return nil
}

// NewDecompressionReaderAndWriter returns a linked pair: write the
// compressed document to the writer, close it, then read the restored
// content from the reader.
func NewDecompressionReaderAndWriter() (io.ReadCloser, io.WriteCloser) {
	newDecompressionCore := new(decompressionCore)
	newDecompressionCore.inputBuffer, newDecompressionCore.outputBuffer = new(bytes.Buffer), new(bytes.Buffer)
	newDecompressionCore.isInputBufferClosed = false
	newDecompressionReader, newDecompressionWriter := new(DecompressionReader), new(DecompressionWriter)
	newDecompressionReader.core, newDecompressionWriter.core = newDecompressionCore, newDecompressionCore
	return newDecompressionReader, newDecompressionWriter
}
