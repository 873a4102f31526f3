package wiki2html

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit takes priority", workers: 4, want: 4},
		{name: "explicit=1 for sequential", workers: 1, want: 1},
		{name: "zero uses auto calculation", workers: 0, want: min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
		{name: "negative uses auto calculation", workers: -3, want: min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolvePoolSize_Bounds(t *testing.T) {
	t.Parallel()

	got := ResolvePoolSize(0)
	if got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("ResolvePoolSize(0) = %d, want within [%d, %d]", got, MinPoolSize, MaxPoolSize)
	}
}

func TestCompiler_CompileAll(t *testing.T) {
	t.Parallel()

	sources := []string{"a", "'''b'''", "\xff", "== c =="}
	results := NewCompiler().CompileAll(context.Background(), sources, 2)

	if len(results) != len(sources) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(sources))
	}
	wantHTML := []string{"<p>a</p>", "<p><strong>b</strong></p>", "", `<h2 id="c">c</h2>`}
	for i, r := range results {
		if i == 2 {
			if !errors.Is(r.Err, ErrInvalidUTF8) {
				t.Errorf("results[2].Err = %v, want ErrInvalidUTF8", r.Err)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
			continue
		}
		if r.Result.HTML != wantHTML[i] {
			t.Errorf("results[%d].HTML = %q, want %q", i, r.Result.HTML, wantHTML[i])
		}
	}
}

func TestCompiler_CompileAllCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewCompiler().CompileAll(ctx, []string{"a", "b"}, 1)
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
}

func TestCompiler_CompileAllEmpty(t *testing.T) {
	t.Parallel()

	if got := NewCompiler().CompileAll(context.Background(), nil, 0); got != nil {
		t.Errorf("CompileAll(nil) = %v, want nil", got)
	}
}
