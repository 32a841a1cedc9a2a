package source_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/karupanerura/dataloader"
	"github.com/karupanerura/dataloader/source"
)

func TestFromMap(t *testing.T) {
	t.Parallel()

	t.Run("aligns results to keys", func(t *testing.T) {
		t.Parallel()

		f := source.FromMap(func(_ context.Context, keys []uint8) (map[uint8]string, error) {
			return map[uint8]string{1: "value1", 3: "value3"}, nil
		})

		results, err := f(t.Context(), []uint8{3, 2, 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []dataloader.Result[string]{
			{Value: "value3"},
			{Err: source.ErrNotFound},
			{Value: "value1"},
		}
		if diff := cmp.Diff(want, results, cmpopts.EquateErrors()); diff != "" {
			t.Errorf("unexpected results (-want +got):\n%s", diff)
		}
	})

	t.Run("passes through error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("unavailable")
		f := source.FromMap(func(context.Context, []uint8) (map[uint8]string, error) {
			return nil, expectedErr
		})
		if _, err := f(t.Context(), []uint8{1}); !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})
}

func TestFromEntries(t *testing.T) {
	t.Parallel()

	f := source.FromEntries(func(_ context.Context, keys []uint8) ([]dataloader.Entry[uint8, string], error) {
		// found keys only, in reverse order
		return []dataloader.Entry[uint8, string]{
			{Key: 4, Value: "value4"},
			{Key: 1, Value: "value1"},
		}, nil
	})

	results, err := f(t.Context(), []uint8{1, 2, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []dataloader.Result[string]{
		{Value: "value1"},
		{Err: source.ErrNotFound},
		{Value: "value4"},
	}
	if diff := cmp.Diff(want, results, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("unexpected results (-want +got):\n%s", diff)
	}
}

func TestFromSingle(t *testing.T) {
	t.Parallel()

	t.Run("per key error", func(t *testing.T) {
		t.Parallel()

		oddErr := errors.New("odd")
		f := source.FromSingle(func(_ context.Context, key int) (int, error) {
			if key%2 == 1 {
				return 0, oddErr
			}
			return key * 10, nil
		}, 2)

		results, err := f(t.Context(), []int{0, 1, 2, 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []dataloader.Result[int]{
			{Value: 0},
			{Err: oddErr},
			{Value: 20},
			{Err: oddErr},
		}
		if diff := cmp.Diff(want, results, cmpopts.EquateErrors()); diff != "" {
			t.Errorf("unexpected results (-want +got):\n%s", diff)
		}
	})

	t.Run("limits concurrency", func(t *testing.T) {
		t.Parallel()

		var running, peak atomic.Int32
		f := source.FromSingle(func(_ context.Context, key int) (int, error) {
			n := running.Add(1)
			defer running.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			return key, nil
		}, 2)

		keys := []int{1, 2, 3, 4, 5, 6}
		results, err := f(t.Context(), keys)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(keys) {
			t.Fatalf("expected %d results, got %d", len(keys), len(results))
		}
		if p := peak.Load(); p > 2 {
			t.Errorf("expected at most 2 concurrent calls, got %d", p)
		}
	})
}

func TestLint(t *testing.T) {
	t.Parallel()

	type user struct {
		ID   int
		Name string
	}
	keyOf := func(u user) int { return u.ID }

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		f := source.Lint(source.FromMap(func(_ context.Context, keys []int) (map[int]user, error) {
			return map[int]user{1: {ID: 1, Name: "Alice"}}, nil
		}), keyOf)

		results, err := f(t.Context(), []int{1, 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
	})

	t.Run("panics on result count mismatch", func(t *testing.T) {
		t.Parallel()

		f := source.Lint[int, user](func(context.Context, []int) ([]dataloader.Result[user], error) {
			return []dataloader.Result[user]{{Value: user{ID: 1}}}, nil
		}, nil)

		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, but did not panic")
			}
		}()
		_, _ = f(t.Context(), []int{1, 2})
	})

	t.Run("panics on key order mismatch", func(t *testing.T) {
		t.Parallel()

		f := source.Lint[int, user](func(context.Context, []int) ([]dataloader.Result[user], error) {
			return []dataloader.Result[user]{{Value: user{ID: 2}}, {Value: user{ID: 1}}}, nil
		}, keyOf)

		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, but did not panic")
			}
		}()
		_, _ = f(t.Context(), []int{1, 2})
	})

	t.Run("ignores failed keys", func(t *testing.T) {
		t.Parallel()

		f := source.Lint[int, user](func(context.Context, []int) ([]dataloader.Result[user], error) {
			return []dataloader.Result[user]{{Err: source.ErrNotFound}, {Value: user{ID: 2}}}, nil
		}, keyOf)

		if _, err := f(t.Context(), []int{1, 2}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
