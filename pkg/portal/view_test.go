package portal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatedLoad struct {
	started chan struct{}
	release chan []string
}

func newGatedLoad() *gatedLoad {
	return &gatedLoad{started: make(chan struct{}), release: make(chan []string)}
}

func (g *gatedLoad) load(ctx context.Context) ([]string, error) {
	close(g.started)
	return <-g.release, nil
}

func TestListViewDropsSupersededResponse(t *testing.T) {
	slow := newGatedLoad()
	calls := 0
	view := NewListView(func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return slow.load(ctx)
		}
		return []string{"STU002"}, nil
	})

	done := make(chan error, 1)
	go func() { done <- view.Load(context.Background()) }()
	<-slow.started

	require.NoError(t, view.Load(context.Background()))
	slow.release <- []string{"STU001"}

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, []string{"STU002"}, view.Rows())
	assert.Equal(t, Loaded, view.State())
	assert.Equal(t, uint64(2), view.Generation())
}

func TestListViewKeepsRowsOnError(t *testing.T) {
	fail := false
	view := NewListView(func(ctx context.Context) ([]string, error) {
		if fail {
			return nil, errors.New("network down")
		}
		return []string{"STU001"}, nil
	})

	require.NoError(t, view.Load(context.Background()))
	fail = true
	err := view.Load(context.Background())

	assert.EqualError(t, err, "network down")
	assert.Equal(t, LoadError, view.State())
	assert.Equal(t, []string{"STU001"}, view.Rows())
	require.NotNil(t, view.Feedback())
	assert.Equal(t, FeedbackError, view.Feedback().Kind)
}

func TestListViewFirstLoadError(t *testing.T) {
	view := NewListView(func(ctx context.Context) ([]string, error) {
		return nil, errors.New("boom")
	})

	assert.Equal(t, Idle, view.State())
	assert.Error(t, view.Load(context.Background()))
	assert.Empty(t, view.Rows())
	assert.EqualError(t, view.Err(), "boom")
}

func TestListViewEmptyResultIsLoaded(t *testing.T) {
	view := NewListView(func(ctx context.Context) ([]string, error) { return nil, nil })
	assert.Nil(t, view.Rows())

	require.NoError(t, view.Load(context.Background()))
	assert.Equal(t, Loaded, view.State())
	rows := view.Rows()
	assert.NotNil(t, rows)
	assert.Len(t, rows, 0)
}

func TestListViewCloseDropsLateResponse(t *testing.T) {
	slow := newGatedLoad()
	view := NewListView(slow.load)

	done := make(chan error, 1)
	go func() { done <- view.Load(context.Background()) }()
	<-slow.started
	view.Close()
	slow.release <- []string{"STU001"}

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, view.Rows())
	assert.True(t, view.Closed())
	assert.ErrorIs(t, view.Load(context.Background()), ErrClosed)
}

func TestListViewDelete(t *testing.T) {
	rows := []string{"a", "b"}
	view := NewListView(func(ctx context.Context) ([]string, error) {
		return append([]string(nil), rows...), nil
	})
	require.NoError(t, view.Load(context.Background()))

	deletes := 0
	del := func(ctx context.Context) error {
		deletes++
		rows = rows[1:]
		return nil
	}

	t.Run("declined", func(t *testing.T) {
		err := view.Delete(context.Background(), func(string) bool { return false }, "Delete record?", del)
		assert.ErrorIs(t, err, ErrDeclined)
		assert.Zero(t, deletes)
	})

	t.Run("failed", func(t *testing.T) {
		err := view.Delete(context.Background(), func(string) bool { return true }, "Delete record?", func(ctx context.Context) error {
			return errors.New("record not found")
		})
		assert.EqualError(t, err, "record not found")
		assert.Equal(t, []string{"a", "b"}, view.Rows())
		assert.Equal(t, "record not found", view.Feedback().Message)
	})

	t.Run("confirmed", func(t *testing.T) {
		var asked string
		err := view.Delete(context.Background(), func(p string) bool { asked = p; return true }, "Delete record?", del)
		require.NoError(t, err)
		assert.Equal(t, "Delete record?", asked)
		assert.Equal(t, 1, deletes)
		assert.Equal(t, []string{"b"}, view.Rows())
		assert.Equal(t, FeedbackSuccess, view.Feedback().Kind)
	})
}
