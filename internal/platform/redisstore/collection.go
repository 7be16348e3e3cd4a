package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// errMissing is the internal marker for an absent key; each store maps it
// to its entity-specific store sentinel.
var errMissing = errors.New("redisstore: key missing")

// collection bundles the key scheme for one entity family: a JSON blob
// per entity at "<prefix>:<id>" plus a set of all IDs at setKey.
type collection struct {
	client *redis.Client
	prefix string
	setKey string
}

func (c *collection) key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

// save writes the entity blob and registers its ID, insert-or-replace.
func (c *collection) save(ctx context.Context, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.key(id), data, 0)
	pipe.SAdd(ctx, c.setKey, id)
	_, err = pipe.Exec(ctx)
	return err
}

// update writes the entity blob only if it already exists, returning
// errMissing otherwise.
func (c *collection) update(ctx context.Context, id string, v any) error {
	exists, err := c.client.Exists(ctx, c.key(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return errMissing
	}
	return c.save(ctx, id, v)
}

// get unmarshals the entity blob into v, returning errMissing when absent.
func (c *collection) get(ctx context.Context, id string, v any) error {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return errMissing
		}
		return err
	}
	return json.Unmarshal([]byte(data), v)
}

// deleteMany removes blobs and unregisters IDs; absent IDs are ignored.
func (c *collection) deleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, c.key(id))
		pipe.SRem(ctx, c.setKey, id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// all fetches every registered blob with a pipelined read and hands each
// payload to decode. Dangling set members (blob deleted out of band) are
// skipped.
func (c *collection) all(ctx context.Context, decode func(data []byte) error) error {
	ids, err := c.client.SMembers(ctx, c.setKey).Result()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, c.key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return err
		}
		if err := decode([]byte(data)); err != nil {
			return err
		}
	}
	return nil
}
