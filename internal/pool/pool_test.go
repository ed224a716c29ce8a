package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapEmpty(t *testing.T) {
	results, errs := Map(context.Background(), []int{}, 3, func(ctx context.Context, i, item int) (int, error) {
		return item, nil
	})
	if len(results) != 0 {
		t.Errorf("Expected empty results for empty input, got %d items", len(results))
	}
	if errs != nil {
		t.Errorf("Expected nil errors for empty input, got %v", errs)
	}
}

func TestMapPreservesOrder(t *testing.T) {
	input := []int{5, 3, 1, 4, 2}

	results, errs := Map(context.Background(), input, 3, func(ctx context.Context, i, item int) (int, error) {
		// Vary completion times so completion order differs from input order.
		time.Sleep(time.Duration(item) * 5 * time.Millisecond)
		return item * 10, nil
	})

	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	for i, r := range results {
		if r != input[i]*10 {
			t.Errorf("results[%d] = %d, want %d", i, r, input[i]*10)
		}
	}
}

func TestMapCollectsErrors(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}

	results, errs := Map(context.Background(), input, 2, func(ctx context.Context, i, item int) (int, error) {
		if item%2 == 0 {
			return 0, errors.New("even number error")
		}
		return item, nil
	})

	if len(results) != len(input) {
		t.Errorf("Expected %d results, got %d", len(input), len(results))
	}
	if len(errs) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(errs))
	}
}

func TestMapInvalidWidth(t *testing.T) {
	input := []int{1, 2, 3}

	results, errs := Map(context.Background(), input, -1, func(ctx context.Context, i, item int) (int, error) {
		return item, nil
	})
	if len(results) != len(input) {
		t.Errorf("Expected %d results, got %d", len(input), len(results))
	}
	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestMapBoundedWidth(t *testing.T) {
	input := make([]int, 20)
	var active, peak int64

	_, errs := Map(context.Background(), input, 3, func(ctx context.Context, i, item int) (int, error) {
		n := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return 0, nil
	})

	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if p := atomic.LoadInt64(&peak); p > 3 {
		t.Errorf("Expected at most 3 concurrent workers, observed %d", p)
	}
}

func TestMapCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int64
	results, _ := Map(ctx, []int{1, 2, 3, 4, 5}, 2, func(ctx context.Context, i, item int) (int, error) {
		atomic.AddInt64(&ran, 1)
		return item, nil
	})

	// Results slice is fully allocated regardless of how many items ran.
	if len(results) != 5 {
		t.Errorf("Expected 5 result slots, got %d", len(results))
	}
	if atomic.LoadInt64(&ran) != 0 {
		t.Errorf("Expected no items to run under a canceled context, got %d", ran)
	}
}

func TestEach(t *testing.T) {
	input := []int{1, 2, 3, 4}
	seen := make([]int64, len(input))

	errs := Each(context.Background(), input, 2, func(ctx context.Context, i, item int) error {
		atomic.StoreInt64(&seen[i], int64(item))
		if item == 3 {
			return errors.New("boom")
		}
		return nil
	})

	if len(errs) != 1 {
		t.Errorf("Expected 1 error, got %d", len(errs))
	}
	for i, item := range input {
		if seen[i] != int64(item) {
			t.Errorf("Item %d was not processed", item)
		}
	}
}
