package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"
	"runtime/debug"
	"strings"

	"github.com/amonks/fanout/internal/color"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/dedent"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(color.Yellow)

// version is set at release time with -ldflags "-X main.version=...".
var version = ""

func init() {
	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, usageText())
		fmt.Fprintln(w, flagText())
		os.Exit(0)
	}
}

const description = `
	Fanout runs batches of simulated tasks concurrently. Each task sleeps
	for a random number of seconds, then reports how long it took. When
	every task in a batch has finished, the batch's results are added to
	the list, in the order the tasks were started.

	Press enter, press space, or click the button to start a batch.
`

func helpText() string {
	b := &strings.Builder{}
	b.WriteString(strings.TrimSpace(dedent.String(description)) + "\n")
	b.WriteString("\n")
	b.WriteString(usageText())
	b.WriteString("\n")
	b.WriteString(flagText())
	b.WriteString("\n")
	b.WriteString(configText())
	b.WriteString("\n")
	b.WriteString(versionText())
	return b.String()
}

func usageText() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, headerStyle.Render("USAGE"))
	b.WriteString("  fanout [flags]\n")
	return b.String()
}

func flagText() string {
	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render("FLAGS"))

	f := flag.CommandLine

	f.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(&b, "  -%s", f.Name)
		name, usage := flag.UnquoteUsage(f)
		if len(name) > 0 {
			b.WriteString("=")
			b.WriteString(name)
		}
		// Print the default value only if it differs to the zero value
		// for this flag type.
		if isZero := isZeroValue(f, f.DefValue); !isZero {
			fmt.Fprintf(&b, " (default %q)", f.DefValue)
		}
		b.WriteString("\n")

		usage = strings.ReplaceAll(usage, "\n", "\n    \t")
		usage = wordwrap.String(usage, 52)
		usage = indent.String(usage, 8)
		b.WriteString(usage)

		b.WriteString("\n")
	})
	return b.String()
}

const exampleConfig = `
	[runner]
	batch_size = 5
	min_seconds = 1
	max_seconds = 4
	policy = "concurrent" # or "reject", "queue"

	[display]
	color = "auto" # or "ascii", "ansi", "ansi256", "truecolor"
`

func configText() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, headerStyle.Render("CONFIG"))
	b.WriteString(indent.String(strings.TrimSpace(dedent.String(exampleConfig)), 2) + "\n")
	return b.String()
}

// isZeroValue determines whether the string represents the zero
// value for a flag.
func isZeroValue(f *flag.Flag, value string) (ok bool) {
	// Build a zero value of the flag's Value type, and see if the
	// result of calling its String method equals the value passed in.
	// This works unless the Value type is itself an interface type.
	typ := reflect.TypeOf(f.Value)
	var z reflect.Value
	if typ.Kind() == reflect.Pointer {
		z = reflect.New(typ.Elem())
	} else {
		z = reflect.Zero(typ)
	}
	return value == z.Interface().(flag.Value).String()
}

func versionText() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, headerStyle.Render("VERSION"))

	v, revision, dirty := version, "", false
	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}
	if v == "" {
		v = "(devel)"
	}
	fmt.Fprintln(b, "  Version:", v)
	if revision != "" {
		fmt.Fprintln(b, "  Revision:", revision)
	}
	if dirty {
		fmt.Fprintln(b, "  Dirty Build")
	}
	return b.String()
}
