package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thierryazur06/site-api/internal/config"
)

func TestNewFormCodeStore_RedisKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store, err := newFormCodeStore(&config.Config{Codes: config.CodesConfig{Store: "redis"}}, client)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "a@example.com", "482913", time.Now().Add(time.Minute)))
	assert.True(t, mr.Exists("codes:form:a@example.com"))
	assert.False(t, mr.Exists("codes:forma@example.com"))
}

func TestNewFormCodeStore_MemoryByDefault(t *testing.T) {
	store, err := newFormCodeStore(&config.Config{Codes: config.CodesConfig{Store: "memory"}}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a@example.com", "482913", time.Now().Add(time.Minute)))
	ok, err := store.Consume(ctx, "a@example.com", "482913", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
}
