package linker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fenilsonani/relink/internal/scanner"
	"github.com/fenilsonani/relink/pkg/utils"
)

// response is one event from the prompt's input source. End-of-input and an
// interrupt while waiting are modeled as responseQuit rather than as errors,
// so the loop below is a single exhaustive switch.
type response int

const (
	responseYes response = iota
	responseNo
	responseAll
	responseQuit
)

// interactiveRun holds the prompt loop's state. The sticky auto-confirm
// flag is the only mutable mode switch in the whole executor.
type interactiveRun struct {
	exec        *Executor
	lines       <-chan string
	out         io.Writer
	autoConfirm bool
}

// RunInteractive executes groups gated by a per-group y/n/a/q prompt read
// from in. A quit response, end-of-input or ctx cancellation while waiting
// terminates the loop; the current group counts as not yet attempted.
func (e *Executor) RunInteractive(ctx context.Context, groups []scanner.DuplicateGroup, in io.Reader, out io.Writer) *ExecutionResult {
	res := &ExecutionResult{}

	run := &interactiveRun{
		exec:  e,
		lines: readLines(in),
		out:   out,
	}

	for i := range groups {
		if !run.autoConfirm {
			run.renderGroup(i+1, len(groups), groups[i])

			switch run.prompt(ctx) {
			case responseNo:
				res.UserSkipped++
				continue
			case responseQuit:
				res.Quit = true
				res.RemainingGroups = len(groups) - i
				fmt.Fprintln(out, "Stopping; remaining groups left untouched.")
				return res
			case responseAll:
				run.autoConfirm = true
			case responseYes:
			}
		}

		res.Confirmed++
		e.runGroup(groups[i], res)
	}

	return res
}

// readLines feeds input lines into a channel so the prompt can also react
// to ctx cancellation while blocked. The channel closes on end-of-input.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}

// prompt blocks for one valid response, re-asking on unrecognized input
func (r *interactiveRun) prompt(ctx context.Context) response {
	for {
		fmt.Fprint(r.out, "Replace duplicates in this group? [y]es / [n]o / [a]ll / [q]uit: ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return responseQuit
		case line, ok := <-r.lines:
			if !ok {
				fmt.Fprintln(r.out)
				return responseQuit
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y", "yes":
				return responseYes
			case "n", "no":
				return responseNo
			case "a", "all":
				return responseAll
			case "q", "quit":
				return responseQuit
			default:
				fmt.Fprintf(r.out, "Unrecognized response %q\n", line)
			}
		}
	}
}

func (r *interactiveRun) renderGroup(num, total int, g scanner.DuplicateGroup) {
	fmt.Fprintf(r.out, "\nGroup %d of %d (%s each, %s recoverable)\n",
		num, total, utils.FormatBytes(g.Size), utils.FormatBytes(g.WastedBytes()))
	fmt.Fprintf(r.out, "  keep    %s\n", g.Master)
	for _, dup := range g.Duplicates {
		fmt.Fprintf(r.out, "  %-7s %s\n", r.exec.opts.Action.String(), dup)
	}
}
