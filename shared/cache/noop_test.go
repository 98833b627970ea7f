package cache_test

import (
	"context"
	"errors"
	"staffdir/shared/cache"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopCache(t *testing.T) {
	c := cache.NewNoop()
	ctx := context.Background()

	assert.NoError(t, c.Save(ctx, "room:gets", []string{"R1"}, 30))

	var out []string
	err := c.Get(ctx, "room:gets", &out)
	assert.True(t, errors.Is(err, cache.Nil))
	assert.Empty(t, out)

	assert.NoError(t, c.Delete(ctx, "room:gets"))
	assert.NoError(t, c.Clear(ctx, "room:*"))
}

func TestNewRedisCache_NilClientFallsBackToNoop(t *testing.T) {
	c := cache.NewRedisCache(nil, nil)

	var out string
	assert.ErrorIs(t, c.Get(context.Background(), "k", &out), cache.Nil)
}
