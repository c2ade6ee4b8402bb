/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisUpdateAttempts = 10

// redisRoundStore shares rounds between instances. Each round is a JSON
// value under trivia:round:{id} that expires ttl after its last update.
type redisRoundStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisRoundStore(client *redis.Client, ttl time.Duration) *redisRoundStore {
	return &redisRoundStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *redisRoundStore) key(id string) string {
	return "trivia:round:" + id
}

func (s *redisRoundStore) Create(ctx context.Context, round *Round) error {
	data, err := json.Marshal(round)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, s.key(round.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store round %s: %w", round.ID, err)
	}
	if !ok {
		return ErrRoundExists
	}

	return nil
}

func (s *redisRoundStore) Get(ctx context.Context, id string) (*Round, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrUnknownRound
	}
	if err != nil {
		return nil, fmt.Errorf("load round %s: %w", id, err)
	}

	return decodeRound(data)
}

// Update runs fn inside an optimistic transaction, retrying when another
// writer changed the round between the read and the write.
func (s *redisRoundStore) Update(ctx context.Context, id string, fn func(*Round) error) (*Round, error) {
	key := s.key(id)

	var updated *Round

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrUnknownRound
		}
		if err != nil {
			return err
		}

		round, err := decodeRound(data)
		if err != nil {
			return err
		}

		if err := fn(round); err != nil {
			return err
		}

		changed, err := json.Marshal(round)
		if err != nil {
			return err
		}

		// Unchanged rounds are not rewritten and keep their TTL.
		if bytes.Equal(changed, data) {
			updated = round

			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, changed, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = round

		return nil
	}

	for range redisUpdateAttempts {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return updated, nil
	}

	return nil, fmt.Errorf("update round %s: too much contention", id)
}

func decodeRound(data []byte) (*Round, error) {
	var round Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, fmt.Errorf("decode round: %w", err)
	}

	return &round, nil
}
