package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

type Session struct {
	LibrarianID string `json:"lid"`
	IssuedAt    int64  `json:"iat"`
	ExpiresAt   int64  `json:"exp"`
}

func key(id string) string          { return fmt.Sprintf("lib:sess:%s", id) }
func ownerSetKey(lid string) string { return fmt.Sprintf("lib:librarian_sessions:%s", lid) }

func (s *Store) Create(ctx context.Context, id, librarianID string) error {
	now := time.Now()
	b, _ := json.Marshal(Session{
		LibrarianID: librarianID,
		IssuedAt:    now.Unix(),
		ExpiresAt:   now.Add(s.ttl).Unix(),
	})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(id), b, s.ttl)
	pipe.SAdd(ctx, ownerSetKey(librarianID), id)
	pipe.Expire(ctx, ownerSetKey(librarianID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	sess, _ := s.Get(ctx, id) // 忽略失败
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if sess != nil {
		pipe.SRem(ctx, ownerSetKey(sess.LibrarianID), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForLibrarian drops every live session for one account.
func (s *Store) RevokeAllForLibrarian(ctx context.Context, librarianID string) error {
	ids, err := s.rdb.SMembers(ctx, ownerSetKey(librarianID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, sid := range ids {
		pipe.Del(ctx, key(sid))
	}
	pipe.Del(ctx, ownerSetKey(librarianID))
	_, err = pipe.Exec(ctx)
	return err
}
