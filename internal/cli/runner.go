package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Exit codes returned by Run and Exec.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done
}

// Runner applies intent lines to a store and prints the resulting views.
type Runner struct {
	store *store.Store
	out   io.Writer
	err   io.Writer
	opt   Options
}

// NewRunner returns a runner printing to out and reporting failures to errOut.
func NewRunner(s *store.Store, out, errOut io.Writer, opt Options) *Runner {
	return &Runner{store: s, out: out, err: errOut, opt: opt}
}

// Run executes every line of in and returns the worst exit code seen.
// Blank lines and lines starting with '#' are skipped.
func (r *Runner) Run(in io.Reader) int {
	code := ExitOK
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c := r.Exec(line); c > code {
			code = c
		}
	}
	if err := sc.Err(); err != nil {
		ui.Fail(r.err, "read: "+err.Error())
		return ExitError
	}
	return code
}

// Exec dispatches a single intent line.
func (r *Runner) Exec(line string) int {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	a := strings.Fields(rest)

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return ExitOK

	case "ls":
		return r.doList()

	case "add":
		return r.doAdd(rest)

	case "done":
		n, code := r.index("done", a)
		if code != ExitOK {
			return code
		}
		return r.doToggle(n)

	case "rm":
		n, code := r.index("rm", a)
		if code != ExitOK {
			return code
		}
		return r.doRemove(n)

	case "filter":
		f, err := model.ParseFilter(rest)
		if err != nil || len(a) == 0 {
			ui.Fail(r.err, "usage: filter <all|completed|active|due>")
			return ExitUsage
		}
		r.store.SetFilter(f)
		ui.OK(r.out, "filter: "+f.String())
		return ExitOK

	case "sort":
		s, err := model.ParseSort(rest)
		if err != nil || len(a) == 0 {
			ui.Fail(r.err, "usage: sort <added|due>")
			return ExitUsage
		}
		r.store.SetSort(s)
		ui.OK(r.out, "sort: "+s.String())
		return ExitOK
	}

	ui.Fail(r.err, "unknown command: "+cmd)
	return ExitUsage
}

// PrintHelp writes the intent grammar to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `Commands (one per line):
  add <title...>     Add a new item (title can be multiple words)
  ls                 List the current view
  done <index>       Toggle done for item at 1-based view index
  rm <index>         Remove item at 1-based view index
  filter <mode>      all | completed | active | due
  sort <mode>        added | due

Example:
  add Buy milk
  add Write report
  done 2
  filter active
  ls
`)
}

// -------------- intent impls ----------------

func (r *Runner) index(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		ui.Fail(r.err, fmt.Sprintf("usage: %s <index>", cmd))
		return 0, ExitUsage
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(r.err, cmd+": not a number: "+a[0])
		return 0, ExitUsage
	}
	return n, ExitOK
}

func (r *Runner) doAdd(title string) int {
	if _, ok := r.store.Add(title); !ok {
		fmt.Fprintln(r.out, ui.Current().Muted.Render("add: blank title ignored"))
		return ExitOK
	}
	ui.OK(r.out, "added")
	return ExitOK
}

func (r *Runner) doToggle(userIndex int) int {
	it, err := r.store.ToggleCompletion(userIndex - 1)
	if err != nil {
		return r.positionFailure(userIndex, err)
	}
	if it.Completed {
		ui.OK(r.out, "done: "+it.Text)
	} else {
		ui.OK(r.out, "reopened: "+it.Text)
	}
	return ExitOK
}

func (r *Runner) doRemove(userIndex int) int {
	it, err := r.store.Delete(userIndex - 1)
	if err != nil {
		return r.positionFailure(userIndex, err)
	}
	ui.OK(r.out, "removed: "+it.Text)
	return ExitOK
}

func (r *Runner) positionFailure(userIndex int, err error) int {
	var pe *store.PositionError
	if !errors.As(err, &pe) {
		ui.Fail(r.err, err.Error())
		return ExitError
	}
	ui.Fail(r.err, fmt.Sprintf("index out of range: have %d, got %d", pe.Len, userIndex))
	fmt.Fprintln(r.err, ui.Current().Muted.Render("Hint: run `ls` to see valid indexes"))
	return ExitUsage
}

func (r *Runner) doList() int {
	t := ui.Current()
	items := r.store.Items()

	// Header + progress
	d, p := r.store.Counts()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), r.store.Len(),
	)
	modes := t.Muted.Render(fmt.Sprintf("Filter: %s  Sort: %s", r.store.Filter(), r.store.Sort()))

	var lines []string
	lines = append(lines, header, modes)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if r.opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `add Buy milk`"))
	ui.Panel(r.out, lines)
	return ExitOK
}

// -------------- rendering helpers --------------

// numbered pairs an item with its 1-based view position.
type numbered struct {
	pos int
	it  model.Item
}

func number(items []model.Item) []numbered {
	out := make([]numbered, len(items))
	for i, it := range items {
		out[i] = numbered{pos: i + 1, it: it}
	}
	return out
}

func flatLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{ui.Current().Muted.Render("no items")}
	}
	return renderLines(number(items))
}

func renderLines(items []numbered) []string {
	t := ui.Current()
	out := make([]string, 0, len(items))
	for _, n := range items {
		idx := fmt.Sprintf("%2d.", n.pos)
		box := t.Muted.Render(t.BoxUnchecked)
		title := n.it.Text
		if len(title) > 80 {
			title = title[:77] + "..."
		}
		if n.it.Completed {
			box = t.Success.Render(t.BoxChecked)
			title = t.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s",
			t.Muted.Render(idx), box, title, t.Muted.Render(n.it.CreatedDate())))
	}
	return out
}

// groupLines splits the view into pending and done sections. Numbers stay
// the view positions so they remain valid for done/rm.
func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []numbered
	for _, n := range number(items) {
		if n.it.Completed {
			done = append(done, n)
		} else {
			pend = append(pend, n)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, renderLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, renderLines(done)...)
	}
	return lines
}
