package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/skillhub-backend/internal/config"
)

func TestOpen_Connects(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client, err := Open(config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestOpen_BadURL(t *testing.T) {
	t.Parallel()

	_, err := Open(config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

func TestOpen_DoesNotDial(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := Open(config.RedisConfig{URL: "redis://" + addr + "/0"})
	require.NoError(t, err)
	defer client.Close()

	assert.Error(t, client.Ping(context.Background()).Err())
}
