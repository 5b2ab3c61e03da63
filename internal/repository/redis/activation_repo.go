package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultActivationTTL = 5 * time.Minute
	ActivationPrefix     = "activation:code"
)

var (
	ErrCodeNotFound  = errors.New("activation code not found")
	ErrCodeSetFailed = errors.New("activation code set failed")
	ErrCodeDelFailed = errors.New("activation code delete failed")
)

// ActivationRepository 账号激活验证码，TTL 到期自动失效
type ActivationRepository struct{}

func (r *ActivationRepository) SetCode(email, code string) error {
	key := fmt.Sprintf("%s:%s", ActivationPrefix, email)
	if err := Client.Set(context.Background(), key, code, DefaultActivationTTL).Err(); err != nil {
		return ErrCodeSetFailed
	}
	return nil
}

func (r *ActivationRepository) GetCode(email string) (string, error) {
	key := fmt.Sprintf("%s:%s", ActivationPrefix, email)
	val, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// DeleteCode 校验通过后一次性删除（幂等）
func (r *ActivationRepository) DeleteCode(email string) error {
	key := fmt.Sprintf("%s:%s", ActivationPrefix, email)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrCodeDelFailed
	}
	return nil
}
