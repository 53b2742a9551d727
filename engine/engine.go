package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/squashbit/huffpress/compressor/huffman"
)

var Engines = [...]string{
	"huffman",
}

type compressor struct {
	compressionEngine string
	compressedContent []byte
}

type decompressor struct {
	compressionEngine string
	restoredContent   []byte
}

var writers = map[string]interface{}{
	"huffman": huffman.NewWriter,
}

var readers = map[string]interface{}{
	"huffman": huffman.NewDecompressionReaderAndWriter,
}

func (c *compressor) write(content []byte) (int, error) {
	newWriter := writers[c.compressionEngine]
	var b bytes.Buffer
	var w io.WriteCloser
	w = newWriter.(func(io.Writer) io.WriteCloser)(&b)
	defer w.Close()
	if _, err := w.Write(content); err != nil {
		return 0, err
	}
	c.compressedContent = b.Bytes()
	return len(c.compressedContent), nil
}

func (d *decompressor) read(content []byte) (int, error) {
	newReaderAndWriter := readers[d.compressionEngine]
	r, w := newReaderAndWriter.(func() (io.ReadCloser, io.WriteCloser))()
	if _, err := w.Write(content); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	restored, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	d.restoredContent = restored
	return len(restored), nil
}

func CompressFiles(algorithms []string, files []string, fileExtension string) {
	for _, file := range files {
		compressFile(algorithms, file, file+"."+fileExtension)
	}
}

func DecompressFiles(algorithms []string, files []string, fileExtension string) {
	for _, file := range files {
		outputFileName := strings.TrimSuffix(file, "."+fileExtension)
		if outputFileName == file {
			outputFileName = file + ".out"
		}
		decompressFile(algorithms, file, outputFileName)
	}
}

func BenchmarkFiles(algorithms []string, files []string) {
	for _, file := range files {
		benchmarkFile(algorithms, file)
	}
}

func compressFile(algorithms []string, filePath string, outputFileName string) []byte {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	color.Cyan("Compressing %s...", filePath)
	compressed := compress(fileContent, algorithms)
	if err = os.WriteFile(outputFileName, compressed, 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Original size (in bytes): %v\n", len(fileContent))
	fmt.Printf("Compressed size (in bytes): %v\n", len(compressed))
	if len(fileContent) > 0 {
		color.Green("Compression ratio: %.2f%%", float32(len(compressed))/float32(len(fileContent))*100)
	}
	return compressed
}

func decompressFile(algorithms []string, filePath string, outputFileName string) []byte {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	color.Cyan("Decompressing %s...", filePath)
	restored := decompress(fileContent, algorithms)
	if err = os.WriteFile(outputFileName, restored, 0644); err != nil {
		panic(err)
	}
	color.Green("Restored %v bytes to %s", len(restored), outputFileName)
	return restored
}

func benchmarkFile(algorithms []string, filePath string) {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	color.Cyan("Benchmarking %s...", filePath)
	start := time.Now()
	compressed := compress(fileContent, algorithms)
	compressTime := time.Since(start)
	start = time.Now()
	restored := decompress(compressed, algorithms)
	decompressTime := time.Since(start)
	fmt.Printf("Original size (in bytes): %v\n", len(fileContent))
	fmt.Printf("Compressed size (in bytes): %v\n", len(compressed))
	if len(fileContent) > 0 {
		color.Green("Compression ratio: %.2f%%", float32(len(compressed))/float32(len(fileContent))*100)
	}
	fmt.Printf("Compression time: %v\n", compressTime)
	fmt.Printf("Decompression time: %v\n", decompressTime)
	if !bytes.Equal(fileContent, restored) {
		color.Red("Round trip mismatch: restored content differs from the original")
		os.Exit(1)
	}
	color.Green("Round trip OK")
}

func compress(content []byte, algorithms []string) []byte {
	for _, algorithm := range algorithms {
		file := compressor{
			compressionEngine: algorithm,
		}
		if _, err := file.write(content); err != nil {
			color.Red("error compressing the document: %v", err)
			os.Exit(1)
		}
		content = file.compressedContent
	}
	return content
}

func decompress(content []byte, algorithms []string) []byte {
	for i := len(algorithms) - 1; i >= 0; i-- {
		file := decompressor{
			compressionEngine: algorithms[i],
		}
		if _, err := file.read(content); err != nil {
			color.Red("error decompressing the document: %v", err)
			os.Exit(1)
		}
		content = file.restoredContent
	}
	return content
}
