package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/amonks/fanout/config"
	"github.com/amonks/fanout/internal/color"
	"github.com/amonks/fanout/internal/styles"
	"github.com/amonks/fanout/metrics"
	"github.com/amonks/fanout/printer"
	"github.com/amonks/fanout/runner"
	"github.com/amonks/fanout/store"
	"github.com/amonks/fanout/tasks"
	"github.com/amonks/fanout/tui"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
)

var (
	fUI        = flag.String("ui", "", "Force a particular ui. Legal values are 'tui' and 'printer'.")
	fConfig    = flag.String("config", config.DefaultPath, "Read settings from the given TOML file, and reload them when it changes. A missing file means default settings.")
	fBatches   = flag.Int("batches", 1, "With the printer ui, the number of batches to run before exiting.")
	fDurations = flag.String("durations", "", "Comma-separated task durations in seconds, used in order and repeated, instead of random ones. For example, '4,1,3,2,1'.")
	fMetrics   = flag.String("metrics", "", "Serve prometheus metrics at /metrics on the given address, like ':9090'.")

	fVersion = flag.Bool("version", false, "Display the version and exit.")
	fHelp    = flag.Bool("help", false, "Display the help text and exit.")
)

func main() {
	flag.Parse()

	if *fVersion {
		fmt.Println(versionText())
		os.Exit(0)
	} else if *fHelp {
		fmt.Println("\n" + helpText())
		os.Exit(0)
	}

	cfg, err := config.Load(*fConfig)
	if err != nil {
		fmt.Println("Error loading config:")
		fmt.Println(err)
		os.Exit(1)
	}
	settings, err := cfg.Runner.Settings()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Problems that aren't worth exiting over are reported in the ui's log
	// once it exists.
	var diagnostics []string
	if err := color.Apply(cfg.Display.Color); err != nil {
		diagnostics = append(diagnostics, fmt.Sprintf("display: %s; using plain text", err))
	}

	opts := []runner.Option{runner.WithSettings(settings)}

	if *fDurations != "" {
		ds, err := parseDurations(*fDurations)
		if err != nil {
			fmt.Println("Invalid value for flag -durations:", err)
			os.Exit(1)
		}
		opts = append(opts, runner.WithDurations(tasks.NewFixedDurations(ds...)))
	}

	var reg *prometheus.Registry
	if *fMetrics != "" {
		reg = prometheus.NewRegistry()
		exporter, err := metrics.New("fanout", reg)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		opts = append(opts, runner.WithMetrics(exporter))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Whatever ends the program first is its exit reason; anything that
	// dies afterwards is a side effect.
	exitReason := &first[error]{}

	if reg != nil {
		srv := &http.Server{Addr: *fMetrics, Handler: metricsMux(reg)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				exitReason.set(fmt.Errorf("metrics server: %w", err))
				cancel()
			}
		}()
		go func() {
			<-ctx.Done()
			srv.Close()
		}()
	}

	st := store.New()

	var (
		r     *runner.Runner
		start func() error
		log   io.Writer
	)
	switch chooseUI() {
	case "tui":
		t := tui.New(ctx, st)
		log = t
		r = runner.New(st, t, append(opts, runner.WithLog(t))...)
		start = func() error { return t.Start(r) }

	case "printer":
		p := printer.New(os.Stdout, st)
		log = p.Writer(printer.KeyLog)
		r = runner.New(st, p, append(opts, runner.WithLog(log))...)
		start = func() error { return runBatches(ctx, r, *fBatches) }

	default:
		fmt.Println("Invalid value for flag -ui. Legal values are 'tui' and 'printer'.")
		os.Exit(1)
	}

	for _, d := range diagnostics {
		fmt.Fprintln(log, styles.Error.Render(d))
	}

	if err := config.Watch(ctx, *fConfig, reload(r, log)); err != nil {
		fmt.Fprintln(log, styles.Error.Render(fmt.Sprintf("not watching %s: %s", *fConfig, err)))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		exitReason.set(start())
		cancel()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	select {
	case <-sigs:
		exitReason.set(context.Canceled)
		cancel()
		<-done
	case <-done:
	}

	if err := exitReason.get(); err != nil && errors.Is(err, context.Canceled) {
		fmt.Printf("Canceled\n")
		os.Exit(0)
	} else if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	} else {
		os.Exit(0)
	}
}

// reload applies each reloaded config to r. Problems are reported to log
// and leave the current settings in place.
func reload(r *runner.Runner, log io.Writer) func(config.Config, error) {
	return func(cfg config.Config, err error) {
		if err != nil {
			fmt.Fprintln(log, styles.Error.Render("config: "+err.Error()))
			return
		}
		if err := color.Apply(cfg.Display.Color); err != nil {
			fmt.Fprintln(log, styles.Error.Render(fmt.Sprintf("display: %s; using plain text", err)))
		}
		settings, err := cfg.Runner.Settings()
		if err != nil {
			fmt.Fprintln(log, styles.Error.Render("config: "+err.Error()))
			return
		}
		if err := r.Configure(settings); err != nil {
			fmt.Fprintln(log, styles.Error.Render("config: "+err.Error()))
		}
	}
}

func chooseUI() string {
	switch *fUI {
	case "":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return "printer"
		}
		return "tui"
	default:
		return *fUI
	}
}

// runBatches launches n batches and waits for all of them. Under the reject
// policy, a launch that's refused waits for the running batch to finish
// and tries again.
func runBatches(ctx context.Context, r *runner.Runner, n int) error {
	for i := 0; i < n; i++ {
		if _, err := r.Launch(); errors.Is(err, runner.ErrBatchRunning) {
			r.Wait()
			i--
		} else if err != nil {
			return err
		}
	}

	done := make(chan struct{})
	go func() { r.Wait(); close(done) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func metricsMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	return mux
}

func parseDurations(s string) ([]int, error) {
	var ds []int
	for _, field := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a whole number of seconds", field)
		}
		if d < 0 {
			return nil, fmt.Errorf("'%d' is negative", d)
		}
		if d > tasks.MaxSeconds {
			return nil, fmt.Errorf("'%d' is longer than %d seconds", d, tasks.MaxSeconds)
		}
		ds = append(ds, d)
	}
	return ds, nil
}
