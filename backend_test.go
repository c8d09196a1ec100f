package atomicops

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

type backendCase struct {
	name string
	p    Primitives
}

func testBackends() []backendCase {
	return []backendCase{
		{"Intrinsics", Intrinsics{}},
		{"Exclusive/cas", Exclusive[CASMonitor]{}},
		{"Exclusive/" + monitorName, Exclusive[hostMonitor]{}},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, p Primitives)) {
	for _, bc := range testBackends() {
		t.Run(bc.name, func(t *testing.T) {
			fn(t, bc.p)
		})
	}
}

var (
	int32Values = []int32{math.MinInt32, -1, 0, 1, 5, 9, 0x7fff, math.MaxInt32}
	int64Values = []int64{
		math.MinInt64, -1 << 32, -1, 0, 1, 5, 9,
		0xffffffff, 1 << 32, 0x0000000100000005, math.MaxInt64,
	}
)

func TestPrimitives_StoreLoad(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		c := new(Int)
		for _, v := range int32Values {
			p.SetInt(c, v)
			if got := p.GetInt(c); got != v {
				t.Errorf("SetInt(%d); GetInt = %d", v, got)
			}
			p.SetIntRelease(c, v)
			if got := p.GetIntAcquire(c); got != v {
				t.Errorf("SetIntRelease(%d); GetIntAcquire = %d", v, got)
			}
		}

		c64 := new(Int64)
		for _, v := range int64Values {
			p.SetInt64(c64, v)
			if got := p.GetInt64(c64); got != v {
				t.Errorf("SetInt64(%d); GetInt64 = %d", v, got)
			}
		}
	})
}

func TestPrimitives_ZeroValue(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		var c Int
		var c64 Int64
		if got := p.GetInt(&c); got != 0 {
			t.Errorf("zero Int holds %d", got)
		}
		if got := p.GetInt64(&c64); got != 0 {
			t.Errorf("zero Int64 holds %d", got)
		}
	})
}

func TestPrimitives_Swap(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		c := new(Int)
		prev := int32(0)
		for _, v := range int32Values {
			if got := p.SwapInt(c, v); got != prev {
				t.Errorf("SwapInt(%d) = %d, want %d", v, got, prev)
			}
			if got := p.GetInt(c); got != v {
				t.Errorf("after SwapInt(%d) cell holds %d", v, got)
			}
			prev = v
		}

		c64 := new(Int64)
		prev64 := int64(0)
		for _, v := range int64Values {
			if got := p.SwapInt64(c64, v); got != prev64 {
				t.Errorf("SwapInt64(%d) = %d, want %d", v, got, prev64)
			}
			if got := p.GetInt64(c64); got != v {
				t.Errorf("after SwapInt64(%d) cell holds %d", v, got)
			}
			prev64 = v
		}
	})
}

func TestPrimitives_TestAndSwap(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		for _, init := range int32Values {
			for _, cmp := range int32Values {
				c := new(Int)
				p.SetInt(c, init)
				got := p.TestAndSwapInt(c, cmp, 42)
				if got != init {
					t.Fatalf("TestAndSwapInt(%d, 42) on %d returned %d", cmp, init, got)
				}
				want := init
				if init == cmp {
					want = 42
				}
				if v := p.GetInt(c); v != want {
					t.Fatalf("TestAndSwapInt(%d, 42) on %d left %d, want %d", cmp, init, v, want)
				}
			}
		}

		for _, init := range int64Values {
			for _, cmp := range int64Values {
				c := new(Int64)
				p.SetInt64(c, init)
				got := p.TestAndSwapInt64(c, cmp, -42)
				if got != init {
					t.Fatalf("TestAndSwapInt64(%d, -42) on %d returned %d", cmp, init, got)
				}
				want := init
				if init == cmp {
					want = -42
				}
				if v := p.GetInt64(c); v != want {
					t.Fatalf("TestAndSwapInt64(%d, -42) on %d left %d, want %d", cmp, init, v, want)
				}
			}
		}
	})
}

func TestPrimitives_TestAndSwapScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		c := new(Int)
		p.SetInt(c, 5)
		if got := p.TestAndSwapInt(c, 5, 9); got != 5 {
			t.Errorf("first TestAndSwapInt(5, 9) = %d, want 5", got)
		}
		if got := p.GetInt(c); got != 9 {
			t.Errorf("cell holds %d after first swap, want 9", got)
		}
		if got := p.TestAndSwapInt(c, 5, 9); got != 9 {
			t.Errorf("second TestAndSwapInt(5, 9) = %d, want 9", got)
		}
		if got := p.GetInt(c); got != 9 {
			t.Errorf("cell holds %d after second swap, want 9", got)
		}

		c64 := new(Int64)
		p.SetInt64(c64, 5)
		if got := p.TestAndSwapInt64(c64, 5, 9); got != 5 {
			t.Errorf("first TestAndSwapInt64(5, 9) = %d, want 5", got)
		}
		if got := p.TestAndSwapInt64(c64, 5, 9); got != 9 {
			t.Errorf("second TestAndSwapInt64(5, 9) = %d, want 9", got)
		}
		if got := p.GetInt64(c64); got != 9 {
			t.Errorf("cell holds %d, want 9", got)
		}
	})
}

// Values that agree in one half only must not compare equal.
func TestPrimitives_TestAndSwap64Halves(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		cases := []struct{ init, cmp int64 }{
			{0x0000000100000005, 0x0000000000000005}, // low words match
			{0x0000000500000001, 0x0000000500000002}, // high words match
			{-1, 0x00000000ffffffff},
		}
		for _, tc := range cases {
			c := new(Int64)
			p.SetInt64(c, tc.init)
			if got := p.TestAndSwapInt64(c, tc.cmp, 7); got != tc.init {
				t.Errorf("TestAndSwapInt64(%#x) on %#x = %#x", tc.cmp, tc.init, got)
			}
			if got := p.GetInt64(c); got != tc.init {
				t.Errorf("cell %#x changed to %#x by mismatching compare %#x", tc.init, got, tc.cmp)
			}
		}
	})
}

func TestPrimitives_AddNv(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		c := new(Int)
		if got := p.AddIntNv(c, 3); got != 3 {
			t.Errorf("AddIntNv(0, 3) = %d", got)
		}
		if got := p.AddIntNv(c, -5); got != -2 {
			t.Errorf("AddIntNv(3, -5) = %d", got)
		}
		p.SetInt(c, math.MaxInt32)
		if got := p.AddIntNv(c, 1); got != math.MinInt32 {
			t.Errorf("AddIntNv(MaxInt32, 1) = %d, want wrap to MinInt32", got)
		}

		c64 := new(Int64)
		p.SetInt64(c64, 0xffffffff)
		if got := p.AddInt64Nv(c64, 1); got != 1<<32 {
			t.Errorf("AddInt64Nv(0xffffffff, 1) = %#x, want carry into high word", got)
		}
		if got := p.AddInt64Nv(c64, -1); got != 0xffffffff {
			t.Errorf("AddInt64Nv(1<<32, -1) = %#x", got)
		}
		p.SetInt64(c64, math.MaxInt64)
		if got := p.AddInt64Nv(c64, 1); got != math.MinInt64 {
			t.Errorf("AddInt64Nv(MaxInt64, 1) = %d, want wrap", got)
		}
	})
}

func stressIterations(t *testing.T) int {
	if testing.Short() {
		return 10_000
	}
	return 100_000
}

func TestPrimitives_ConcurrentAddInt64(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		const agents = 8
		iterations := stressIterations(t)
		c := new(Int64)

		var wg sync.WaitGroup
		wg.Add(agents)
		for range agents {
			go func() {
				defer wg.Done()
				for range iterations {
					p.AddInt64Nv(c, 1)
				}
			}()
		}
		wg.Wait()

		if got, want := p.GetInt64(c), int64(agents*iterations); got != want {
			t.Fatalf("lost updates: cell holds %d, want %d", got, want)
		}
	})
}

func TestPrimitives_ConcurrentAddMixedDeltas(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		agents := runtime.GOMAXPROCS(0) * 2
		iterations := stressIterations(t) / 10
		c := new(Int)
		c64 := new(Int64)
		p.SetInt(c, 17)
		p.SetInt64(c64, 1<<32-3)

		var wg sync.WaitGroup
		var sum atomic.Int64
		wg.Add(agents)
		for a := range agents {
			go func(id int) {
				defer wg.Done()
				var local int64
				for i := range iterations {
					d := int32((id*31+i)%7) - 3
					p.AddIntNv(c, d)
					p.AddInt64Nv(c64, int64(d))
					local += int64(d)
				}
				sum.Add(local)
			}(a)
		}
		wg.Wait()

		if got, want := p.GetInt(c), int32(17+sum.Load()); got != want {
			t.Errorf("Int holds %d, want %d", got, want)
		}
		if got, want := p.GetInt64(c64), 1<<32-3+sum.Load(); got != want {
			t.Errorf("Int64 holds %d, want %d", got, want)
		}
	})
}

func TestPrimitives_ConcurrentTestAndSwapCounter(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		const agents = 8
		iterations := stressIterations(t) / 10
		c := new(Int)

		var wg sync.WaitGroup
		wg.Add(agents)
		for range agents {
			go func() {
				defer wg.Done()
				for range iterations {
					prev := p.GetInt(c)
					for {
						seen := p.TestAndSwapInt(c, prev, prev+1)
						if seen == prev {
							break
						}
						prev = seen
					}
				}
			}()
		}
		wg.Wait()

		if got, want := p.GetInt(c), int32(agents*iterations); got != want {
			t.Fatalf("cell holds %d, want %d", got, want)
		}
	})
}

// Every token swapped in must come out exactly once: either returned by
// a later swap or left in the cell.
func TestPrimitives_ConcurrentSwapConservesValues(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		const agents = 6
		iterations := stressIterations(t) / 20
		c := new(Int64)

		seen := make([][]int64, agents)
		var wg sync.WaitGroup
		wg.Add(agents)
		for a := range agents {
			go func(id int) {
				defer wg.Done()
				for i := range iterations {
					token := int64(id+1)<<40 | int64(i+1)
					seen[id] = append(seen[id], p.SwapInt64(c, token))
				}
			}(a)
		}
		wg.Wait()

		count := make(map[int64]int, agents*iterations+1)
		for _, s := range seen {
			for _, v := range s {
				count[v]++
			}
		}
		count[p.GetInt64(c)]++

		if count[0] != 1 {
			t.Fatalf("initial value observed %d times", count[0])
		}
		for a := range agents {
			for i := range iterations {
				token := int64(a+1)<<40 | int64(i+1)
				if count[token] != 1 {
					t.Fatalf("token %#x observed %d times", token, count[token])
				}
			}
		}
	})
}

// A payload written before a release store must be visible after the
// acquire load that observes it.
func TestPrimitives_ReleaseAcquireHandoff(t *testing.T) {
	forEachBackend(t, func(t *testing.T, p Primitives) {
		rounds := 2000
		if testing.Short() {
			rounds = 200
		}
		var violations int
		for r := range rounds {
			var payload, got int
			ready := new(Int)
			done := make(chan struct{})
			want := r*7 + 1
			go func() {
				defer close(done)
				for p.GetIntAcquire(ready) != 1 {
					runtime.Gosched()
				}
				got = payload
			}()
			payload = want
			p.SetIntRelease(ready, 1)
			<-done
			if got != want {
				violations++
			}
		}
		if violations != 0 {
			t.Fatalf("%d of %d handoffs observed a stale payload", violations, rounds)
		}
	})
}
