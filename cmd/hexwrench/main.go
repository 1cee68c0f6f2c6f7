// Command hexwrench is an interactive terminal hex editor: open a file,
// browse it as hex+ASCII, and apply byte-level insertions and deletions
// that edit a logical view of the file without ever touching the bytes on
// disk.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jcorbin/hexwrench/internal/bytesource"
	"github.com/jcorbin/hexwrench/internal/editbuf"
	"github.com/jcorbin/hexwrench/internal/hexui"
)

func main() { os.Exit(run()) }

func run() int {
	blockLen := flag.Int("blocklen", editbuf.DefaultBlockLen, "BLOCK_LEN promotion quantum used by the edit buffer")
	debugLog := flag.String("debug-log", "", "write per-keystroke trace lines (key, cursor, mode) to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <file>\n", filepath.Base(os.Args[0]))
	}
	flag.Parse()

	logger := log.New(os.Stderr, "", 0)

	if flag.NArg() != 1 {
		flag.Usage()
		return 1
	}
	path := flag.Arg(0)

	if *debugLog != "" {
		f, err := os.Create(*debugLog)
		if err != nil {
			logger.Printf("unable to open debug log %s: %v", *debugLog, err)
			return 1
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	}

	src, err := bytesource.Open(path)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}
	defer src.Close()

	data := editbuf.Open(src.Bytes(), editbuf.BlockLen(*blockLen))

	term, err := hexui.Open(os.Stdin, os.Stdout)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}
	defer term.Close()

	return runLoop(term, data, path, logger, *debugLog != "")
}

func runLoop(term *hexui.Terminal, data *editbuf.Buffer, path string, logger *log.Logger, trace bool) int {
	st := &hexui.State{Filename: path, Data: data}
	var ctrl hexui.Controller
	renderer := hexui.NewRenderer(term.Out())
	in := bufio.NewReader(term.In())

	if err := renderer.Clear(); err != nil {
		logger.Printf("render: %v", err)
		return 1
	}

	for !st.Quit {
		if term.ResizeRequested() {
			if err := renderer.Clear(); err != nil {
				logger.Printf("render: %v", err)
			}
		}

		rows, cols, err := term.Size()
		if err != nil {
			rows, cols = 24, 80 // fall back to a conservative default rather than wedging the draw loop
		}
		st.FollowCursor(rows - 2)

		if err := renderer.Draw(st, rows, cols); err != nil {
			logger.Printf("render: %v", err)
			return 1
		}

		key, err := in.ReadByte()
		if err != nil {
			break
		}
		if trace {
			logger.Printf("key %q cursor=%d mode=%v", key, st.Cursor, st.Mode)
		}
		ctrl.HandleKey(st, key)
	}

	if err := term.Err(); err != nil {
		logger.Printf("terminal write: %v", err)
		return 1
	}
	return 0
}
