package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	mc := NewMemcacheService("localhost:11211", "propertymonitor_test", 200*time.Millisecond)

	if err := mc.Ping(); err != nil {
		t.Skip("Memcached is not available, skipping test")
	}

	err := mc.Set("cooldown", []byte("500"), 2*time.Second)
	assert.NoError(t, err)

	value, err := mc.Get("cooldown")
	assert.NoError(t, err)
	assert.Equal(t, "500", string(value))

	err = mc.Delete("cooldown")
	assert.NoError(t, err)

	_, err = mc.Get("cooldown")
	assert.ErrorIs(t, err, ErrMiss)

	// Deleting a missing key is not an error
	assert.NoError(t, mc.Delete("cooldown"))
}

func TestMemcacheServiceKeyPrefix(t *testing.T) {
	assert.Equal(t, "pm:idealista", NewMemcacheService("localhost:11211", "pm", 0).key("idealista"))
	assert.Equal(t, "idealista", NewMemcacheService("localhost:11211", "", 0).key("idealista"))
}
