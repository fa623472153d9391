package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/99minutos/auth-system/internal/core/domain"
)

// Key layout:
//
//	user:<id>                hash with the user record
//	user:email:<email>       -> id
//	user:username:<username> -> id
const (
	userKeyPrefix     = "user:"
	emailKeyPrefix    = "user:email:"
	usernameKeyPrefix = "user:username:"
)

// createUserScript inserts the record and both index keys only when neither
// index key exists. Lua scripts run atomically, so two concurrent inserts of
// the same email cannot both succeed.
var createUserScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 or redis.call('EXISTS', KEYS[3]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1],
	'id', ARGV[1],
	'username', ARGV[2],
	'email', ARGV[3],
	'password_hash', ARGV[4],
	'created_at', ARGV[5],
	'updated_at', ARGV[6])
redis.call('SET', KEYS[2], ARGV[1])
redis.call('SET', KEYS[3], ARGV[1])
return 1
`)

// UserRepository stores users in Redis hashes with secondary index keys.
type UserRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

type redisUser struct {
	ID           string `redis:"id"`
	Username     string `redis:"username"`
	Email        string `redis:"email"`
	PasswordHash string `redis:"password_hash"`
	CreatedAt    int64  `redis:"created_at"`
	UpdatedAt    int64  `redis:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id := uuid.NewString()
	keys := []string{userKeyPrefix + id, emailKeyPrefix + user.Email, usernameKeyPrefix + user.Username}

	ok, err := createUserScript.Run(ctx, r.client, keys,
		id,
		user.Username,
		user.Email,
		user.PasswordHash,
		strconv.FormatInt(user.CreatedAt.Unix(), 10),
		strconv.FormatInt(user.UpdatedAt.Unix(), 10),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if ok == 0 {
		return nil, domain.ErrUserExists
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, err := r.client.Get(ctx, emailKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user index: %w", err)
	}

	cmd := r.client.HGetAll(ctx, userKeyPrefix+id)
	fields, err := cmd.Result()
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrUserNotFound
	}

	var ru redisUser
	if err := cmd.Scan(&ru); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	return &domain.User{
		ID:           ru.ID,
		Username:     ru.Username,
		Email:        ru.Email,
		PasswordHash: ru.PasswordHash,
		CreatedAt:    unixToTime(ru.CreatedAt),
		UpdatedAt:    unixToTime(ru.UpdatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
