// Command atomicstress hammers the atomicops backends with the
// contention scenarios they must survive and prints a JSON report.
//
//	atomicstress -agents 8 -iterations 100000 -backend all
//
// The exit status is 1 when any scenario observes a lost update or a
// reordered handoff.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"github.com/llxisdsh/atomicops"
)

type config struct {
	agents     int
	iterations int
	rounds     int
	backend    string
}

type backend struct {
	name string
	p    atomicops.Primitives
}

type result struct {
	Scenario  string `json:"scenario"`
	Backend   string `json:"backend"`
	Expected  int64  `json:"expected"`
	Observed  int64  `json:"observed"`
	Failures  int64  `json:"failures"`
	ElapsedNS int64  `json:"elapsed_ns"`
	OK        bool   `json:"ok"`
}

type report struct {
	GOARCH  string         `json:"goarch"`
	CPUs    int            `json:"cpus"`
	Build   atomicops.Info `json:"build"`
	Results []result       `json:"results"`
}

var errFailed = errors.New("one or more scenarios failed")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "atomicstress: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var cfg config
	fs := flag.NewFlagSet("atomicstress", flag.ContinueOnError)
	fs.IntVar(&cfg.agents, "agents", 8, "concurrent agents per scenario")
	fs.IntVar(&cfg.iterations, "iterations", 100_000, "operations per agent")
	fs.IntVar(&cfg.rounds, "rounds", 10_000, "release/acquire handoff rounds")
	fs.StringVar(&cfg.backend, "backend", "default", "default, intrinsics, exclusive or all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.agents < 1 || cfg.iterations < 0 || cfg.rounds < 0 {
		return fmt.Errorf("invalid sizes: agents=%d iterations=%d rounds=%d",
			cfg.agents, cfg.iterations, cfg.rounds)
	}

	backends, err := selectBackends(cfg.backend)
	if err != nil {
		return err
	}

	rep := report{
		GOARCH: runtime.GOARCH,
		CPUs:   runtime.NumCPU(),
		Build:  atomicops.Backend(),
	}
	ok := true
	for _, b := range backends {
		for _, sc := range scenarios {
			start := time.Now()
			r := sc.run(b.p, cfg)
			r.Scenario = sc.name
			r.Backend = b.name
			r.ElapsedNS = time.Since(start).Nanoseconds()
			r.OK = r.Failures == 0 && r.Observed == r.Expected
			if !r.OK {
				ok = false
				fmt.Fprintf(os.Stderr, "atomicstress: %s/%s: expected %d, observed %d, %d failures\n",
					b.name, sc.name, r.Expected, r.Observed, r.Failures)
			}
			rep.Results = append(rep.Results, r)
		}
	}

	buf, err := sonnet.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if _, err := out.Write(append(buf, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !ok {
		return errFailed
	}
	return nil
}

func selectBackends(name string) ([]backend, error) {
	switch strings.ToLower(name) {
	case "default":
		return []backend{{atomicops.Backend().Backend, atomicops.Default().Primitives()}}, nil
	case "intrinsics":
		return []backend{{"intrinsics", atomicops.Intrinsics{}}}, nil
	case "exclusive":
		return []backend{{"exclusive", atomicops.NewHostExclusive()}}, nil
	case "all":
		return []backend{
			{"intrinsics", atomicops.Intrinsics{}},
			{"exclusive", atomicops.NewHostExclusive()},
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

type scenario struct {
	name string
	run  func(p atomicops.Primitives, cfg config) result
}

var scenarios = []scenario{
	{"fetch-add", fetchAdd},
	{"test-and-swap", testAndSwap},
	{"handoff", handoff},
}

func fetchAdd(p atomicops.Primitives, cfg config) result {
	var (
		total atomicops.Int64
		wg    sync.WaitGroup
	)
	perAgent := make([]atomicops.PaddedInt64, cfg.agents)
	wg.Add(cfg.agents)
	for a := range cfg.agents {
		go func(mine *atomicops.Int64) {
			defer wg.Done()
			for range cfg.iterations {
				p.AddInt64Nv(&total, 1)
				p.AddInt64Nv(mine, 1)
			}
		}(&perAgent[a].Int64)
	}
	wg.Wait()

	var failures int64
	for a := range perAgent {
		if p.GetInt64(&perAgent[a].Int64) != int64(cfg.iterations) {
			failures++
		}
	}
	return result{
		Expected: int64(cfg.agents) * int64(cfg.iterations),
		Observed: p.GetInt64(&total),
		Failures: failures,
	}
}

func testAndSwap(p atomicops.Primitives, cfg config) result {
	var (
		counter atomicops.Int
		wg      sync.WaitGroup
	)
	wg.Add(cfg.agents)
	for range cfg.agents {
		go func() {
			defer wg.Done()
			for range cfg.iterations {
				prev := p.GetInt(&counter)
				for {
					seen := p.TestAndSwapInt(&counter, prev, prev+1)
					if seen == prev {
						break
					}
					prev = seen
				}
			}
		}()
	}
	wg.Wait()

	return result{
		Expected: int64(int32(cfg.agents * cfg.iterations)),
		Observed: int64(p.GetInt(&counter)),
	}
}

// handoff publishes a payload with a release store and has a second
// agent read it back after an acquire load, once per round.
func handoff(p atomicops.Primitives, cfg config) result {
	var (
		ready, ack atomicops.Int
		payload    [4]int64
		failures   int64
		wg         sync.WaitGroup
	)
	rounds := int32(cfg.rounds)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for r := int32(1); r <= rounds; r++ {
			for p.GetIntAcquire(&ack) != r-1 {
				runtime.Gosched()
			}
			for i := range payload {
				payload[i] = int64(r)<<8 | int64(i)
			}
			p.SetIntRelease(&ready, r)
		}
	}()
	go func() {
		defer wg.Done()
		for r := int32(1); r <= rounds; r++ {
			for p.GetIntAcquire(&ready) != r {
				runtime.Gosched()
			}
			for i := range payload {
				if payload[i] != int64(r)<<8|int64(i) {
					failures++
					break
				}
			}
			p.SetIntRelease(&ack, r)
		}
	}()
	wg.Wait()

	return result{
		Expected: int64(rounds),
		Observed: int64(p.GetInt(&ack)),
		Failures: failures,
	}
}
