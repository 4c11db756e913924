// Lockfinder reads a lock trace written with FANOUT_TRACE_LOCKS set and
// reports which locks were held when the trace ended, and by whom. It's for
// diagnosing a hung fanout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var logfile = flag.String("logfile", "mutex.log", "path to the lock trace to consider")

func run() error {
	flag.Parse()

	file, err := os.Open(*logfile)
	if err != nil {
		return err
	}
	defer file.Close()

	l, err := read(file)
	if err != nil {
		return err
	}
	fmt.Print(l.report())
	return nil
}

type lockfinder struct {
	// holders maps each lock to the reason it was taken for, or "" if it
	// was released.
	holders map[string]string
	// waiters maps each lock to the reasons still waiting for it.
	waiters map[string][]string
}

var re = regexp.MustCompile(`^(?P<Date>.{25}) \[(?P<Lock>[^\]]+)\] (?P<Reason>.*?) ?(?P<Op>seeks|holds|releases) lock$`)

func read(r io.Reader) (*lockfinder, error) {
	l := &lockfinder{
		holders: map[string]string{},
		waiters: map[string][]string{},
	}
	scn := bufio.NewScanner(r)
	for scn.Scan() {
		l.handleLine(scn.Text())
	}
	if err := scn.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *lockfinder) handleLine(line string) {
	match := re.FindStringSubmatch(line)
	if len(match) == 0 {
		return
	}
	lock, reason, op := match[re.SubexpIndex("Lock")], match[re.SubexpIndex("Reason")], match[re.SubexpIndex("Op")]
	switch op {
	case "seeks":
		l.waiters[lock] = append(l.waiters[lock], reason)
	case "holds":
		l.holders[lock] = reason
		l.waiters[lock] = remove(l.waiters[lock], reason)
	case "releases":
		l.holders[lock] = ""
	}
}

func remove(ss []string, s string) []string {
	for i, el := range ss {
		if el == s {
			return append(ss[:i:i], ss[i+1:]...)
		}
	}
	return ss
}

func (l *lockfinder) report() string {
	locks := make([]string, 0, len(l.holders))
	for lock := range l.holders {
		locks = append(locks, lock)
	}
	for lock := range l.waiters {
		if _, ok := l.holders[lock]; !ok {
			locks = append(locks, lock)
		}
	}
	sort.Strings(locks)

	var buf strings.Builder
	fmt.Fprintf(&buf, "report\n")
	for _, lock := range locks {
		if reason := l.holders[lock]; reason != "" {
			fmt.Fprintf(&buf, "- %s is held by %s\n", lock, reason)
		} else {
			fmt.Fprintf(&buf, "- %s is not held\n", lock)
		}
		for _, w := range l.waiters[lock] {
			fmt.Fprintf(&buf, "  - %s is waiting\n", w)
		}
	}
	return buf.String()
}
