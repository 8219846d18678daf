package cmd_shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/rskv-p/trie/constant"
	"github.com/rskv-p/trie/pkg/x_alloc"
	"github.com/rskv-p/trie/pkg/x_log"
	"github.com/rskv-p/trie/pkg/x_trie"
)

const prompt = "trie> "

const help = `commands:
  insert <key> <value>   store value under key
  lookup <key>           print the value or (absent)
  remove <key>           delete key
  count                  number of entries
  dump                   print the tree
  stats                  allocator counters
  free                   release every entry
  quit                   leave the shell
use "" for the empty key`

// Shell is a line-oriented front end for a string-valued trie.
type Shell struct {
	tr   *x_trie.Trie[string]
	heap *x_alloc.Heap
	out  io.Writer
}

func New(out io.Writer) *Shell {
	heap := x_alloc.NewHeap()
	return &Shell{
		tr:   x_trie.New[string](x_trie.WithAllocator(heap), x_trie.WithLogger(x_log.New("shell"))),
		heap: heap,
		out:  out,
	}
}

// Run reads commands from in until EOF or quit. Command errors are printed
// and do not stop the loop.
func (s *Shell) Run(in io.Reader, interactive bool) error {
	sc := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(s.out, prompt)
		}
		if !sc.Scan() {
			return sc.Err()
		}
		quit, err := s.Exec(sc.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(line string) (quit bool, err error) {
	args, err := shlex.Split(line)
	if err != nil {
		return false, fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return false, nil
	}

	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "insert", "set":
		if len(args) != 2 {
			return false, fmt.Errorf("%s <key> <value>: %w", name, constant.ErrBadArgs)
		}
		if err := s.tr.InsertString(args[0], args[1]); err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, "ok")
	case "lookup", "get":
		if len(args) != 1 {
			return false, fmt.Errorf("%s <key>: %w", name, constant.ErrBadArgs)
		}
		if v, ok := s.tr.LookupString(args[0]); ok {
			fmt.Fprintf(s.out, "%q\n", v)
		} else {
			fmt.Fprintln(s.out, "(absent)")
		}
	case "remove", "del":
		if len(args) != 1 {
			return false, fmt.Errorf("%s <key>: %w", name, constant.ErrBadArgs)
		}
		if s.tr.RemoveString(args[0]) {
			fmt.Fprintln(s.out, "removed")
		} else {
			fmt.Fprintln(s.out, "(absent)")
		}
	case "count":
		fmt.Fprintln(s.out, s.tr.NumEntries())
	case "dump":
		s.tr.Dump(s.out)
	case "stats":
		fmt.Fprintf(s.out, "entries=%d nodes=%d %s\n", s.tr.NumEntries(), s.tr.NumNodes(), s.heap.Stats())
	case "free":
		s.tr.Free()
		fmt.Fprintln(s.out, "ok")
	case "help":
		fmt.Fprintln(s.out, help)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%q: %w", name, constant.ErrUnknownCommand)
	}
	return false, nil
}
