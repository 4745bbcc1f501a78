package main

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/funny-falcon/ownership/alloc"
	"github.com/funny-falcon/ownership/delegate"
	"github.com/funny-falcon/ownership/owned"
)

// sample is pointer-free, so an arena keeps it in its chunks.
type sample struct {
	ID   int64
	Vals [4]int64
}

func (s *sample) Total() int64 {
	var t int64
	for _, v := range s.Vals {
		t += v
	}
	return t
}

type totaler interface {
	Total() int64
}

type runResult struct {
	Items   int         `json:"items"`
	Workers int         `json:"workers"`
	Sum     int64       `json:"sum"`
	Clones  int64       `json:"clones"`
	Leaks   string      `json:"leaks,omitempty"`
	Stats   alloc.Stats `json:"stats"`
}

func accumulate(x int64, sum *int64) int64 {
	*sum += x
	return *sum
}

// runWorkload builds n samples as Unique values, turns them into atomic
// Shared values and lets workers goroutines clone, read and release every
// one of them, summing through a delegate each. All blocks go through a
// Tracking over a, so the result reports anything left behind.
func runWorkload[A alloc.Allocator](a A, n, workers int) (runResult, error) {
	tr := alloc.NewTracking(a)
	res := runResult{Items: n, Workers: workers}
	var err error
	res.Sum, res.Clones, err = work(tr, n, workers)
	res.Leaks = tr.Report()
	res.Stats = tr.Stats()
	return res, err
}

func work[A alloc.Allocator](a A, n, workers int) (sum, clones int64, err error) {
	shares := make([]owned.Shared[totaler, A, owned.Atomic], 0, n)
	defer func() {
		for i := range shares {
			shares[i].Release()
		}
	}()

	for i := 0; i < n; i++ {
		u, err := owned.MakeUniqueIn(a, func(s *sample) error {
			s.ID = int64(i)
			for j := range s.Vals {
				s.Vals[j] = int64(i + j)
			}
			return nil
		})
		if err != nil {
			return 0, 0, err
		}
		t := owned.UpcastMove(&u, func(s *sample) totaler { return s })
		sh, err := owned.ToShared[owned.Atomic](&t)
		if err != nil {
			t.Release()
			return 0, 0, err
		}
		shares = append(shares, sh.Move())
	}

	var (
		wg      sync.WaitGroup
		cloned  atomic.Int64
		partial = make([]int64, workers)
		errs    = make([]error, workers)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			d, err := delegate.Bind11In[owned.Atomic](a, accumulate, &partial[w])
			if err != nil {
				errs[w] = err
				return
			}
			defer d.Release()
			for i := range shares {
				c := shares[i].Clone()
				d.Call(c.Value().Total())
				c.Release()
				cloned.Add(1)
			}
		}(w)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return 0, cloned.Load(), err
	}
	for _, p := range partial {
		sum += p
	}
	return sum, cloned.Load(), nil
}
