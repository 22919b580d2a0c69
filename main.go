package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"sixlatch/pkg/concurrency/latch"
	"sixlatch/pkg/concurrency/sixlock"
	"sixlatch/pkg/logging"
	"sixlatch/pkg/primitives"
	"sixlatch/pkg/ui"
)

// Configuration controls the contention workload driven against the
// latch table while the monitor renders its counters.
type Configuration struct {
	Pages     int
	Readers   int
	Writers   int
	Upgraders int
	Duration  time.Duration
	Headless  bool
	Verbose   bool
}

func main() {
	config := parseArguments()

	level := logging.LevelInfo
	if config.Verbose {
		level = logging.LevelDebug
	}
	if err := logging.Init(logging.Config{Level: level}); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	table := latch.NewLatchTable()
	ctx, cancel := context.WithTimeout(context.Background(), config.Duration)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	startWorkload(ctx, eg, table, config)

	if config.Headless {
		if err := eg.Wait(); err != nil {
			log.Fatalf("Workload failed: %v", err)
		}
	} else {
		program := tea.NewProgram(ui.NewModel(table.Snapshot))
		go func() {
			_ = eg.Wait()
			program.Quit()
		}()
		if _, err := program.Run(); err != nil {
			log.Fatalf("Monitor failed: %v", err)
		}
		cancel()
		if err := eg.Wait(); err != nil {
			log.Fatalf("Workload failed: %v", err)
		}
	}

	printSummary(table.Snapshot(), config)
}

func parseArguments() Configuration {
	config := Configuration{}

	flag.IntVar(&config.Pages, "pages", 16, "number of pages the workload contends over")
	flag.IntVar(&config.Readers, "readers", 8, "reader goroutines")
	flag.IntVar(&config.Writers, "writers", 2, "writer goroutines")
	flag.IntVar(&config.Upgraders, "upgraders", 2, "read-then-upgrade goroutines")
	flag.DurationVar(&config.Duration, "duration", 30*time.Second, "how long to run the workload")
	flag.BoolVar(&config.Headless, "headless", false, "run without the TUI and print a summary")
	flag.BoolVar(&config.Verbose, "verbose", false, "enable debug logging")
	flag.Parse()

	if config.Pages < 1 {
		fmt.Fprintln(os.Stderr, "pages must be at least 1")
		os.Exit(1)
	}
	return config
}

// startWorkload launches the reader, writer, and upgrader loops. Each
// loop pins a random page, exercises one acquisition pattern, and
// unpins, until the context expires.
func startWorkload(ctx context.Context, eg *errgroup.Group, table *latch.LatchTable, config Configuration) {
	randomPage := func(r *rand.Rand) primitives.PageID {
		return primitives.NewPageID(1, primitives.PageNumber(r.Intn(config.Pages)+1))
	}

	for i := 0; i < config.Readers; i++ {
		seed := int64(i)
		eg.Go(func() error {
			r := rand.New(rand.NewSource(seed))
			for ctx.Err() == nil {
				pl := table.Pin(randomPage(r))
				g := pl.Read()
				if r.Intn(4) == 0 {
					// Optimistic drop-and-relock, the descent pattern.
					if g2, ok := pl.DropForRelock(g, nil); ok {
						g2.Release()
					}
				} else {
					g.Release()
				}
				if err := pl.Unpin(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	for i := 0; i < config.Writers; i++ {
		seed := int64(1000 + i)
		eg.Go(func() error {
			r := rand.New(rand.NewSource(seed))
			for ctx.Err() == nil {
				pl := table.Pin(randomPage(r))
				in := pl.Intent()
				wr := pl.Write(in)
				time.Sleep(time.Duration(r.Intn(200)) * time.Microsecond)
				wr.Release()
				in.Release()
				if err := pl.Unpin(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	for i := 0; i < config.Upgraders; i++ {
		seed := int64(2000 + i)
		eg.Go(func() error {
			r := rand.New(rand.NewSource(seed))
			log := logging.WithComponent("upgrader")
			for ctx.Err() == nil {
				pl := table.Pin(randomPage(r))
				g := pl.Read()
				if in, ok := pl.TryUpgrade(g); ok {
					wr := pl.Write(in)
					wr.Release()
					g = in.Downgrade()
				} else {
					// Intent slot taken: fall back to the ordinary
					// intent path instead of spinning on upgrades.
					g.Release()
					log.Debug("upgrade conflict", "page", pl.PageID().String())
					in := pl.IntentOrSleep(func(*sixlock.SixLock) bool { return true })
					g = in.Downgrade()
				}
				g.Release()
				if err := pl.Unpin(); err != nil {
					return err
				}
			}
			return nil
		})
	}
}

func printSummary(stats latch.Stats, config Configuration) {
	title := lipgloss.NewStyle().Bold(true).Foreground(ui.PrimaryColor)
	fmt.Println(title.Render("sixlatch workload summary"))
	fmt.Printf("  pages %d  readers %d  writers %d  upgraders %d\n",
		config.Pages, config.Readers, config.Writers, config.Upgraders)
	fmt.Printf("  reads %d (failed %d)  intents %d (failed %d)  writes %d (failed %d)\n",
		stats.Reads, stats.ReadFailures,
		stats.Intents, stats.IntentFailures,
		stats.Writes, stats.WriteFailures)
	fmt.Printf("  upgrades %d (conflicts %d)  relocks %d hit / %d stale\n",
		stats.Upgrades, stats.UpgradeFailures,
		stats.RelockHits, stats.RelockMisses)
}
