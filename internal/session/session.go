package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oyaguma3/radius-idp-gateway/internal/config"
)

// Session は認証成功時に払い出されるセッションを表す。
// Class属性としてセッションIDをNASに返し、Accountingとの突合に使う。
type Session struct {
	ID            string `redis:"-"`
	Realm         string `redis:"realm"`
	Username      string `redis:"username"`
	UserID        string `redis:"user_id"`
	Protocol      string `redis:"protocol"`
	NASIdentifier string `redis:"nas_identifier"`
	NASIPAddress  string `redis:"nas_ip"`
	AuthTime      int64  `redis:"auth_time"`
}

// sessionStore はSessionStoreインターフェースの実装。
type sessionStore struct {
	vc *ValkeyClient
}

// NewSessionStore は新しいSessionStoreを生成する。
func NewSessionStore(vc *ValkeyClient) SessionStore {
	return &sessionStore{vc: vc}
}

// Create はセッション本体とユーザー索引をTTL付きで登録する。
func (s *sessionStore) Create(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.AuthTime == 0 {
		sess.AuthTime = time.Now().Unix()
	}

	key := sessionKey(sess.ID)
	idxKey := userIndexKey(sess.Realm, sess.Username)

	pipe := s.vc.Client().Pipeline()
	pipe.HSet(ctx, key, StructToMap(sess))
	pipe.Expire(ctx, key, config.SessionTTL)
	pipe.SAdd(ctx, idxKey, sess.ID)
	pipe.Expire(ctx, idxKey, config.SessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return nil
}

// Get はセッション情報を取得する。
func (s *sessionStore) Get(ctx context.Context, id string) (*Session, error) {
	m, err := s.vc.Client().HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	if len(m) == 0 {
		return nil, ErrSessionNotFound
	}
	sess := &Session{ID: id}
	if err := MapToStruct(m, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SessionsFor はレルム内ユーザーのアクティブセッションID一覧を返す。
// 索引にはTTL切れで消えた本体のIDが残り得るため、存在確認して除外する。
func (s *sessionStore) SessionsFor(ctx context.Context, realm, username string) ([]string, error) {
	ids, err := s.vc.Client().SMembers(ctx, userIndexKey(realm, username)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}

	active := make([]string, 0, len(ids))
	for _, id := range ids {
		n, err := s.vc.Client().Exists(ctx, sessionKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
		}
		if n > 0 {
			active = append(active, id)
		}
	}
	return active, nil
}

// Delete はセッション本体・ノート・索引エントリを削除する。
func (s *sessionStore) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.vc.Client().Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.Del(ctx, noteKey(id, NoteSessionPassword))
	pipe.SRem(ctx, userIndexKey(sess.Realm, sess.Username), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return nil
}

// PutNote はセッションノートをセッションと同じTTLで保存する。
func (s *sessionStore) PutNote(ctx context.Context, id, name, value string) error {
	if err := s.vc.Client().Set(ctx, noteKey(id, name), value, config.SessionTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return nil
}

// GetNote はセッションノートを取得する。
func (s *sessionStore) GetNote(ctx context.Context, id, name string) (string, error) {
	val, err := s.vc.Client().Get(ctx, noteKey(id, name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoteNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}
	return val, nil
}

// NotesFor はレルム内ユーザーの全アクティブセッションの同名ノート値を集める。
// ノートを持たないセッションはスキップする。
func (s *sessionStore) NotesFor(ctx context.Context, realm, username, name string) ([]string, error) {
	ids, err := s.SessionsFor(ctx, realm, username)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(ids))
	for _, id := range ids {
		val, err := s.GetNote(ctx, id, name)
		if err != nil {
			if errors.Is(err, ErrNoteNotFound) {
				continue
			}
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}
