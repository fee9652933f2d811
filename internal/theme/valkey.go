// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// prefsKeyPrefix namespaces visitor preference keys in Valkey.
const prefsKeyPrefix = "prefs:"

// ValkeyStorage persists preferences server-side, keyed by an anonymous
// visitor ID carried in a cookie. Keys never expire.
type ValkeyStorage struct {
	client  *redis.Client
	visitor string
}

// NewValkeyStorage returns storage scoped to one visitor.
func NewValkeyStorage(client *redis.Client, visitorID string) *ValkeyStorage {
	return &ValkeyStorage{client: client, visitor: visitorID}
}

// Get reads a preference. A missing key is not an error.
func (v *ValkeyStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := v.client.Get(ctx, v.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prefs get %s: %w", key, err)
	}
	return val, true, nil
}

// Set writes a preference with no expiry.
func (v *ValkeyStorage) Set(ctx context.Context, key, value string) error {
	if err := v.client.Set(ctx, v.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("prefs set %s: %w", key, err)
	}
	return nil
}

func (v *ValkeyStorage) key(key string) string {
	return prefsKeyPrefix + v.visitor + ":" + key
}
