package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/squashbit/huffpress/engine"
)

var Commands = [...]string{"compress", "decompress", "benchmark", "help"}

func main() {
	application := os.Args[0]
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	compressCmd := flag.Bool(Commands[0], false, "Compress File")
	decompressCmd := flag.Bool(Commands[1], false, "Decompress File")
	benchmarkCmd := flag.Bool(Commands[2], false, "Benchmark File")
	helpCmd := flag.Bool(Commands[3], false, "Help")

	if len(os.Args) == 1 {
		fmt.Println("Please provide commands")
		os.Exit(1)
	}
	commandArgs := findIntersection(
		[]string{
			"--compress",
			"--decompress",
			"--benchmark",
		},
		os.Args[1:],
	)
	flag.CommandLine.Parse(commandArgs)
	commandsSelected := countTrue([]bool{*compressCmd, *decompressCmd, *benchmarkCmd})
	if commandsSelected > 1 {
		fmt.Println("Specify a single command")
		os.Exit(1)
	} else if commandsSelected == 0 {
		commandArgs = findIntersection(
			[]string{
				"--help",
			},
			os.Args[1:],
		)
		flag.CommandLine.Parse(commandArgs)
		if *helpCmd {
			fmt.Fprintf(os.Stderr, "Usage of %s:\n", application)
			fmt.Fprintf(os.Stderr, "Valid commands include:\n\t%s\n", strings.Join(Commands[:], ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			flag.PrintDefaults()
			return
		}
		fmt.Println("No command is selected. Compression by default")
		cmdTrue := true
		compressCmd = &cmdTrue
	}

	if *compressCmd {
		compressFS := flag.NewFlagSet("compress", flag.ExitOnError)
		compressFS.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage of %s --compress [OPTIONS] <file(s)>\n", application)
			fmt.Fprintf(os.Stderr, "Valid options include:\n\t%s\n", strings.Join([]string{"algorithm, delete, outfileext, help"}, ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			compressFS.PrintDefaults()
		}
		algorithmCompress := compressFS.String("algorithm", "huffman", fmt.Sprintf("Which algorithm(s) to use, choices include: \n\t%s", strings.Join(engine.Engines[:], ", ")))
		deleteAfterCompress := compressFS.Bool("delete", false, "Delete file after compression")
		outputFileExtensionCompress := compressFS.String("outfileext", "hpr", "File extension used for the result")
		helpCompress := compressFS.Bool("help", false, "Compress Help")
		commandArgs = findIntersection(
			[]string{
				"--algorithm",
				"--delete",
				"--outfileext",
			},
			os.Args[2:],
		)
		if len(commandArgs) == 0 {
			commandArgs = findIntersection(
				[]string{
					"--help",
				},
				os.Args[2:],
			)
		}
		compressFS.Parse(commandArgs)
		if *helpCompress {
			compressFS.Usage()
			return
		}

		files := fileArguments()
		algorithmsChosen := strings.Split(*algorithmCompress, ",")
		trimSpace(algorithmsChosen)
		engine.CompressFiles(algorithmsChosen, files, *outputFileExtensionCompress)
		if *deleteAfterCompress {
			deleteFiles(files)
		}
	}

	if *decompressCmd {
		decompressFS := flag.NewFlagSet("decompress", flag.ExitOnError)
		decompressFS.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage of %s --decompress [OPTIONS] <file(s)>\n", application)
			fmt.Fprintf(os.Stderr, "Valid options include:\n\t%s\n", strings.Join([]string{"algorithm, delete, infileext, help"}, ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			decompressFS.PrintDefaults()
		}
		algorithmDecompress := decompressFS.String("algorithm", "huffman", fmt.Sprintf("Which algorithm(s) were used, choices include: \n\t%s", strings.Join(engine.Engines[:], ", ")))
		deleteAfterDecompress := decompressFS.Bool("delete", false, "Delete file after decompression")
		inputFileExtensionDecompress := decompressFS.String("infileext", "hpr", "File extension of the compressed input")
		helpDecompress := decompressFS.Bool("help", false, "Decompress Help")
		commandArgs = findIntersection(
			[]string{
				"--algorithm",
				"--delete",
				"--infileext",
			},
			os.Args[2:],
		)
		if len(commandArgs) == 0 {
			commandArgs = findIntersection(
				[]string{
					"--help",
				},
				os.Args[2:],
			)
		}
		decompressFS.Parse(commandArgs)
		if *helpDecompress {
			decompressFS.Usage()
			return
		}

		files := fileArguments()
		algorithmsChosen := strings.Split(*algorithmDecompress, ",")
		trimSpace(algorithmsChosen)
		engine.DecompressFiles(algorithmsChosen, files, *inputFileExtensionDecompress)
		if *deleteAfterDecompress {
			deleteFiles(files)
		}
	}

	if *benchmarkCmd {
		benchmarkFS := flag.NewFlagSet("benchmark", flag.ExitOnError)
		benchmarkFS.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage of %s --benchmark [OPTIONS] <file(s)>\n", application)
			fmt.Fprintf(os.Stderr, "Valid options include:\n\t%s\n", strings.Join([]string{"algorithm, help"}, ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			benchmarkFS.PrintDefaults()
		}
		algorithmBenchmark := benchmarkFS.String("algorithm", "huffman", fmt.Sprintf("Which algorithm(s) to benchmark, choices include: \n\t%s", strings.Join(engine.Engines[:], ", ")))
		helpBenchmark := benchmarkFS.Bool("help", false, "Benchmark Help")
		commandArgs = findIntersection(
			[]string{
				"--algorithm",
				"--help",
			},
			os.Args[2:],
		)
		benchmarkFS.Parse(commandArgs)
		if *helpBenchmark {
			benchmarkFS.Usage()
			return
		}

		files := fileArguments()
		algorithmsChosen := strings.Split(*algorithmBenchmark, ",")
		trimSpace(algorithmsChosen)
		engine.BenchmarkFiles(algorithmsChosen, files)
	}
}

// fileArguments finds the first non-flag argument, splits it on commas and
// checks that every named file exists.
func fileArguments() []string {
	var fileName string
	i := 1
	for ; i < len(os.Args) && os.Args[i][0] == '-'; i++ {
	}
	if i == len(os.Args) {
		fmt.Println("No file provided")
		os.Exit(1)
	}
	fileName = os.Args[i]
	files := strings.Split(fileName, ",")
	trimSpace(files)
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			fmt.Printf("Could not open the provided file %s\n", f)
			os.Exit(1)
		}
	}
	return files
}

func countTrue(commands []bool) int {
	count := 0
	for _, c := range commands {
		if c == true {
			count++
		}
	}
	return count
}

func findIntersection(commandList, argList []string) []string {
	set := make(map[string]struct{}, len(commandList))
	for _, c := range commandList {
		set[c] = struct{}{}
	}
	var out []string
	for _, arg := range argList {
		name, _, _ := strings.Cut(arg, "=")
		if _, ok := set[name]; ok {
			out = append(out, arg)
		}
	}
	return out
}

func trimSpace(s []string) {
	for i := range s {
		s[i] = strings.TrimSpace(s[i])
	}
}

func deleteFiles(files []string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			panic(err)
		}
	}
}
