package loader

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bobmcallan/sentinel/internal/common"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func source(fetch func(context.Context) ([]string, error), calls *int32) Source[[]string, string] {
	return Source[[]string, string]{
		Name: "alerts",
		Fetch: func(ctx context.Context) ([]string, error) {
			atomic.AddInt32(calls, 1)
			return fetch(ctx)
		},
		Map: Items[string],
		Fallback: func(now time.Time) []string {
			return []string{"demo-1 " + now.Format(time.Kitchen), "demo-2"}
		},
		ErrorFlag: "Failed to fetch alerts",
		Warning:   "Backend connection failed. Displaying demo alerts.",
	}
}

func TestLoad_Success(t *testing.T) {
	var calls int32
	res := Load(context.Background(), source(func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}, &calls), WithClock(clock))

	assert.Equal(t, int32(1), calls)
	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, []string{"a", "b"}, res.Items)
	assert.Empty(t, res.Error)
	assert.Empty(t, res.Warning)
	assert.False(t, res.Degraded())
	assert.True(t, res.Settled())
	assert.Equal(t, fixedNow, res.LoadedAt)
}

func TestLoad_Empty(t *testing.T) {
	var calls int32
	res := Load(context.Background(), source(func(context.Context) ([]string, error) {
		return []string{}, nil
	}, &calls))

	assert.Equal(t, int32(1), calls)
	assert.Equal(t, StateEmpty, res.State)
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Warning, "empty results show no banner")
	assert.Empty(t, res.Error)
}

func TestLoad_FailureUsesFallback(t *testing.T) {
	var calls int32
	var buf bytes.Buffer
	logger := common.NewLoggerWithOutput("warn", &buf)

	res := Load(context.Background(), source(func(context.Context) ([]string, error) {
		return nil, errors.New("connection refused")
	}, &calls), WithClock(clock), WithLogger(logger))

	assert.Equal(t, int32(1), calls, "no retry")
	assert.Equal(t, StateFallback, res.State)
	assert.Equal(t, []string{"demo-1 12:00PM", "demo-2"}, res.Items)
	assert.Equal(t, "Failed to fetch alerts", res.Error)
	assert.Equal(t, "Backend connection failed. Displaying demo alerts.", res.Warning)
	assert.True(t, res.Degraded())

	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), `"section":"alerts"`)
}

func TestLoad_MapShapesResponse(t *testing.T) {
	type page struct{ Rows []int }
	src := Source[page, int]{
		Name:  "rows",
		Fetch: func(context.Context) (page, error) { return page{Rows: []int{3, 1}}, nil },
		Map:   func(p page) []int { return p.Rows },
	}
	res := Load(context.Background(), src)
	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, []int{3, 1}, res.Items)
}

func TestLoad_MissingFetchFallsBack(t *testing.T) {
	src := Source[[]string, string]{
		Name:      "news",
		Fallback:  func(time.Time) []string { return []string{"x"} },
		ErrorFlag: "Failed to fetch news",
	}
	res := Load(context.Background(), src)
	assert.Equal(t, StateFallback, res.State)
	assert.Equal(t, []string{"x"}, res.Items)
}

func TestLoad_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	var calls int32
	Load(ctx, source(func(got context.Context) ([]string, error) {
		assert.Equal(t, "v", got.Value(key{}))
		return nil, nil
	}, &calls))
	assert.Equal(t, int32(1), calls)
}

func TestStart_DeliversOnceAndCloses(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	ch := Start(context.Background(), source(func(context.Context) ([]string, error) {
		<-release
		return []string{"late"}, nil
	}, &calls))

	select {
	case <-ch:
		t.Fatal("result delivered before fetch settled")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	res, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, StateReady, res.State)

	_, ok = <-ch
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", State(0).String())
	assert.Equal(t, "fallback", StateFallback.String())
	assert.Equal(t, "unknown", State(99).String())
}
