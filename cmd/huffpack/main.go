// Command huffpack compresses, decompresses, compares, and inspects files
// using the huffpack container format.
//
// Example usage:
//	$ huffpack -a c -f book.txt -o book.huf
//	$ huffpack -a d -f book.huf -o book.out
//	$ huffpack -a cmp -f book.txt -o book.out
//	$ huffpack -a inspect -f book.huf
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dsnet/golib/unitconv"

	"github.com/chronos-tachyon/huffpack"
	"github.com/chronos-tachyon/huffpack/logger"
)

var (
	a = flag.String("a", "c", "action: c to compress, d to decompress, cmp to compare, inspect to dump a container")
	f = flag.String("f", "", "input file (the first file for cmp)")
	o = flag.String("o", "", "output file (the second file for cmp)")
	q = flag.Bool("q", false, "quiet: do not log each operation")
)

// exitDiffer is the exit status of cmp when the files differ.
const exitDiffer = 2

func main() {
	flag.Parse()
	if *f == "" {
		log.Fatalln("missing -f")
	}
	if *o == "" && *a != "inspect" {
		log.Fatalln("missing -o")
	}

	l := logger.Std()
	if *q {
		l = logger.Discard
	}
	storage := huffpack.OSStorage{}
	codec := huffpack.New(huffpack.WithStorage(storage), huffpack.WithLogger(l))

	var err error
	switch *a {
	case "c":
		r, cerr := codec.Compress(*f, *o)
		err = report(os.Stdout, r, cerr)
	case "d":
		r, cerr := codec.Decompress(*f, *o)
		err = report(os.Stdout, r, cerr)
	case "cmp":
		var equal bool
		equal, err = compare(os.Stdout, codec, *f, *o)
		if err == nil && !equal {
			os.Exit(exitDiffer)
		}
	case "inspect":
		err = inspect(os.Stdout, storage, *f)
	default:
		err = fmt.Errorf("unknown action %q", *a)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func report(w io.Writer, r huffpack.Result, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s, in %sB, out %sB, ratio %.3f\n",
		r.Status, r.Flag, formatSize(r.InputSize), formatSize(r.OutputSize), r.Ratio())
	return nil
}

func compare(w io.Writer, codec *huffpack.Codec, x, y string) (bool, error) {
	equal, err := codec.Compare(x, y)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(w, "ok: equal %t\n", equal)
	return equal, nil
}

func inspect(w io.Writer, s huffpack.Storage, name string) error {
	container, err := s.ReadFile(name)
	if err != nil {
		return err
	}
	hdr, payload, err := huffpack.ParseHeader(container)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "flag:     %s\n", hdr.Flag)
	fmt.Fprintf(w, "size:     %sB\n", formatSize(int64(len(container))))
	if !hdr.Flag.IsHuffman() {
		fmt.Fprintf(w, "original: %sB\n", formatSize(int64(len(payload))))
		return nil
	}
	fmt.Fprintf(w, "original: %sB\n", formatSize(int64(hdr.Frequencies.Total())))
	fmt.Fprintf(w, "distinct: %d\n", hdr.Frequencies.Distinct())
	fmt.Fprintf(w, "packed:   %d bytes, %d padding bits\n", len(payload), hdr.Padding)

	codes := huffpack.NewCodeTable(huffpack.BuildTree(&hdr.Frequencies))
	_, err = codes.Dump(w)
	return err
}

func formatSize(n int64) string {
	return unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2)
}
