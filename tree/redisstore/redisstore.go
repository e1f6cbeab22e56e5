/*
Package redisstore keeps named trees on a Redis database.

Trees are stored with their JSON encoding under the key "<prefix>:<name>".
*/
package redisstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/arbor/tree"
	"github.com/pbanos/arbor/tree/json"
	"gopkg.in/redis.v5"
)

// ErrTreeNotFound is returned when loading or deleting a tree that is not
// on the store.
const ErrTreeNotFound = storeError("tree not found")

type storeError string

func (e storeError) Error() string {
	return string(e)
}

// Store keeps trees on a Redis database under a key prefix.
type Store struct {
	rc     *redis.Client
	prefix string
}

// New builds a Store backed by the given redis client that uses the given
// prefix for its keys.
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc, prefix}
}

/*
Save takes a context, a name and a tree and stores the tree under the given
name, replacing any tree previously stored with it.
*/
func (rs *Store) Save(ctx context.Context, name string, t *tree.Tree) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %v", name, err)
	}
	_, err = rs.rc.Set(rs.keyFor(name), data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %v", name, err)
	}
	return nil
}

/*
Create takes a context and a tree, stores the tree under a new random name
and returns the name.
*/
func (rs *Store) Create(ctx context.Context, t *tree.Tree) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("creating tree: encoding tree: %v", err)
	}
	for {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		name := randString(20)
		ok, err := rs.rc.SetNX(rs.keyFor(name), data, 0).Result()
		if err != nil {
			return "", fmt.Errorf("creating tree in redis: %v", err)
		}
		if ok {
			return name, nil
		}
	}
}

/*
Load takes a context and a name and returns the tree stored under it, or
ErrTreeNotFound if there is none.
*/
func (rs *Store) Load(ctx context.Context, name string) (*tree.Tree, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	data, err := rs.rc.Get(rs.keyFor(name)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("retrieving tree %q: %w", name, ErrTreeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", name, err)
	}
	t, err := json.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: decoding: %w", name, err)
	}
	return t, nil
}

/*
Delete takes a context and a name and removes the tree stored under it, or
returns ErrTreeNotFound if there is none.
*/
func (rs *Store) Delete(ctx context.Context, name string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	n, err := rs.rc.Del(rs.keyFor(name)).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", name, err)
	}
	if n == 0 {
		return fmt.Errorf("deleting tree %q: %w", name, ErrTreeNotFound)
	}
	return nil
}

// List returns the sorted names of the trees on the store.
func (rs *Store) List(ctx context.Context) ([]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	keys, err := rs.rc.Keys(rs.keyFor("*")).Result()
	if err != nil {
		return nil, fmt.Errorf("listing trees in redis: %v", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, rs.prefix+":"))
	}
	sort.Strings(names)
	return names, nil
}

func (rs *Store) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
