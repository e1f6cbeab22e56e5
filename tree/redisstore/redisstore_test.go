package redisstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })
	return New(rc, "arbor"), mr
}

func windTree(t *testing.T) *tree.Tree {
	wind := feature.New("Wind", []string{"high", "low"})
	decision := feature.New("Decision", []string{"play", "stay"})
	root, err := tree.NewInternal(tree.RootEdge(), wind, "play", []tree.Node{
		tree.NewLeaf(tree.EdgeFor("high"), "stay"),
		tree.NewLeaf(tree.EdgeFor("low"), "play"),
	})
	require.NoError(t, err)
	tr, err := tree.New(root, []*feature.Feature{wind}, decision)
	require.NoError(t, err)
	return tr
}

func TestSaveAndLoad(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()
	tr := windTree(t)

	require.NoError(t, s.Save(ctx, "weather", tr))
	assert.True(t, mr.Exists("arbor:weather"))

	loaded, err := s.Load(ctx, "weather")
	require.NoError(t, err)
	assert.Equal(t, tr.String(), loaded.String())
}

func TestLoadMissing(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	assert.True(t, errors.Is(err, ErrTreeNotFound), "got %v", err)

	require.NoError(t, mr.Set("arbor:broken", `{"root":{}}`))
	_, err = s.Load(ctx, "broken")
	assert.True(t, errors.Is(err, tree.ErrMalformedTree), "got %v", err)
}

func TestCreateListDelete(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	tr := windTree(t)

	name, err := s.Create(ctx, tr)
	require.NoError(t, err)
	assert.Len(t, name, 20)
	require.NoError(t, s.Save(ctx, "a", tr))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", name}, names)

	require.NoError(t, s.Delete(ctx, "a"))
	assert.True(t, errors.Is(s.Delete(ctx, "a"), ErrTreeNotFound))
	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)
}

func TestCancelledContext(t *testing.T) {
	s, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, context.Canceled, s.Save(ctx, "a", windTree(t)))
	_, err := s.Load(ctx, "a")
	assert.Equal(t, context.Canceled, err)
	_, err = s.Create(ctx, windTree(t))
	assert.Equal(t, context.Canceled, err)
}
