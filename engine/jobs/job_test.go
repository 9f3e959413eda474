package jobs

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewJobSystemErrors(t *testing.T) {
	tests := []struct {
		name     string
		workers  int
		chanSize int
		wantErr  error
	}{
		{name: "no workers", workers: 0, chanSize: 1, wantErr: ErrNoWorkers},
		{name: "negative channel", workers: 1, chanSize: -1, wantErr: ErrNegativeChannelSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js, err := NewJobSystem(tt.workers, tt.chanSize)
			if !errors.Is(err, tt.wantErr) || js != nil {
				t.Fatalf("NewJobSystem() = %v, %v, want nil, %v", js, err, tt.wantErr)
			}
		})
	}
}

func TestJobSystemRunsJobs(t *testing.T) {
	js, err := NewJobSystem(4, 8)
	if err != nil {
		t.Fatalf("NewJobSystem() error = %v", err)
	}
	if js.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", js.Workers())
	}

	var (
		mu      sync.Mutex
		results []int
		failed  []string
	)
	errOdd := errors.New("odd")
	for i := 0; i < 10; i++ {
		i := i
		err := js.Submit(Job{
			Name: "square",
			Run: func() (interface{}, error) {
				if i%2 == 1 {
					return nil, errOdd
				}
				return i * i, nil
			},
			OnComplete: func(result interface{}) {
				mu.Lock()
				results = append(results, result.(int))
				mu.Unlock()
			},
			OnFailure: func(err error) {
				mu.Lock()
				failed = append(failed, err.Error())
				mu.Unlock()
			},
		})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	js.Shutdown()

	sort.Ints(results)
	if diff := cmp.Diff([]int{0, 4, 16, 36, 64}, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if len(failed) != 5 {
		t.Errorf("failures = %d, want 5", len(failed))
	}
}

func TestJobSystemOptionalCallbacks(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	if err != nil {
		t.Fatalf("NewJobSystem() error = %v", err)
	}
	var ran atomic.Int32
	jobs := []Job{
		{Name: "no run"},
		{Name: "no callbacks", Run: func() (interface{}, error) {
			ran.Add(1)
			return nil, nil
		}},
		{Name: "failure without handler", Run: func() (interface{}, error) {
			ran.Add(1)
			return nil, errors.New("ignored")
		}},
	}
	for _, j := range jobs {
		if err := js.Submit(j); err != nil {
			t.Fatalf("Submit(%q) error = %v", j.Name, err)
		}
	}
	js.Shutdown()
	if ran.Load() != 2 {
		t.Errorf("ran = %d, want 2", ran.Load())
	}
}

func TestJobSystemShutdown(t *testing.T) {
	js, err := NewJobSystem(2, 1)
	if err != nil {
		t.Fatalf("NewJobSystem() error = %v", err)
	}
	js.Shutdown()
	js.Shutdown()
	if err := js.Submit(Job{Name: "late"}); !errors.Is(err, ErrShutdown) {
		t.Errorf("Submit() after Shutdown error = %v, want %v", err, ErrShutdown)
	}
}
