package refresh

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/swapcell-dev/swapcell"
)

// scriptedSource replays a fixed sequence of fetch results.
type scriptedSource struct {
	results []fetchResult
	calls   int
}

type fetchResult struct {
	data    []byte
	version string
	err     error
}

func (s *scriptedSource) Fetch(_ context.Context, _ string) ([]byte, string, error) {
	if s.calls >= len(s.results) {
		return nil, "", ErrNotModified
	}
	r := s.results[s.calls]
	s.calls++
	return r.data, r.version, r.err
}

func decodeInt(data []byte) (int, error) {
	return strconv.Atoi(string(data))
}

func TestRefreshNowSwapsDecodedValue(t *testing.T) {
	cell := swapcell.New(0)
	src := &scriptedSource{results: []fetchResult{
		{data: []byte("42"), version: "v1"},
	}}

	r := New(cell, src, decodeInt)
	if err := r.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error: %v", err)
	}

	if got := *cell.Access(); got != 42 {
		t.Errorf("expected 42 after refresh, got %d", got)
	}
	if r.version != "v1" {
		t.Errorf("expected version %q recorded, got %q", "v1", r.version)
	}
}

func TestRefreshNowNotModifiedIsNoOp(t *testing.T) {
	cell := swapcell.New(7)
	src := &scriptedSource{} // immediately reports not modified

	r := New(cell, src, decodeInt)
	snap := cell.Access()

	if err := r.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error: %v", err)
	}
	if cell.Access() != snap {
		t.Error("expected identical snapshot after a not-modified fetch")
	}
}

func TestRefreshNowDecodeErrorKeepsValue(t *testing.T) {
	cell := swapcell.New(7)
	src := &scriptedSource{results: []fetchResult{
		{data: []byte("not a number"), version: "v1"},
	}}

	r := New(cell, src, decodeInt)
	err := r.RefreshNow(context.Background())
	if err == nil {
		t.Fatal("expected decode error")
	}
	if got := *cell.Access(); got != 7 {
		t.Errorf("expected value kept on decode failure, got %d", got)
	}
	if r.version != "" {
		t.Errorf("expected version unchanged on failure, got %q", r.version)
	}
}

func TestRefreshNowFetchErrorKeepsValue(t *testing.T) {
	cell := swapcell.New(7)
	wantErr := errors.New("source down")
	src := &scriptedSource{results: []fetchResult{
		{err: wantErr},
	}}

	r := New(cell, src, decodeInt)
	if err := r.RefreshNow(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if got := *cell.Access(); got != 7 {
		t.Errorf("expected value kept on fetch failure, got %d", got)
	}
}

func TestRefreshNowOnSwap(t *testing.T) {
	cell := swapcell.New(0)
	src := &scriptedSource{results: []fetchResult{
		{data: []byte("1"), version: "v1"},
		{data: []byte("2"), version: "v2"},
	}}

	var swapped []int
	r := New(cell, src, decodeInt, WithOnSwap[int](func(v int) {
		swapped = append(swapped, v)
	}))

	for i := 0; i < 3; i++ {
		if err := r.RefreshNow(context.Background()); err != nil {
			t.Fatalf("RefreshNow() #%d error: %v", i, err)
		}
	}

	if len(swapped) != 2 || swapped[0] != 1 || swapped[1] != 2 {
		t.Errorf("unexpected swap sequence: %v", swapped)
	}
}

func TestRefresherReadersKeepSnapshotsAcrossSwaps(t *testing.T) {
	cell := swapcell.New(1)
	src := &scriptedSource{results: []fetchResult{
		{data: []byte("2"), version: "v1"},
	}}

	snap := cell.Access()
	r := New(cell, src, decodeInt)
	if err := r.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow() error: %v", err)
	}

	if *snap != 1 {
		t.Errorf("reader snapshot changed by swap: got %d", *snap)
	}
	if got := *cell.Access(); got != 2 {
		t.Errorf("expected new readers to see 2, got %d", got)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cell := swapcell.New(0)
	src := &scriptedSource{results: []fetchResult{
		{data: []byte("5"), version: "v1"},
	}}

	r := New(cell, src, decodeInt, WithInterval[int](time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()

	// Run refreshes once up front before waiting on the ticker.
	deadline := time.After(2 * time.Second)
	for *cell.Access() != 5 {
		select {
		case <-deadline:
			t.Fatal("initial refresh never happened")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
