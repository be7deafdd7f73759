package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mentorloop/mentorloop/internal/model"
)

const (
	mentorDirectoryKey = "mentors:directory"
	mentorDirectoryTTL = 60 * time.Second
)

// MentorLister выборка каталога менторов из хранилища
type MentorLister interface {
	GetMentors(ctx context.Context) ([]*model.User, error)
}

// DirectoryService каталог менторов с кэшем в Redis.
// Кэш необязателен: при nil-клиенте каждый запрос идёт в БД
type DirectoryService struct {
	users  MentorLister
	cache  *redis.Client
	logger *zap.Logger
}

func NewDirectoryService(users MentorLister, cache *redis.Client, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// ListMentors получает список менторов, из кэша если он свежий
func (s *DirectoryService) ListMentors(ctx context.Context) ([]*model.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, mentorDirectoryKey).Result()
		if err == nil {
			var mentors []*model.User
			if err := json.Unmarshal([]byte(cached), &mentors); err == nil {
				return mentors, nil
			}
			// Битый кэш перечитываем из БД
			s.logger.Warn("Failed to decode cached mentor directory", zap.Error(err))
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Mentor directory cache read failed", zap.Error(err))
		}
	}

	mentors, err := s.users.GetMentors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}

	if s.cache != nil {
		data, err := json.Marshal(mentors)
		if err == nil {
			if err := s.cache.Set(ctx, mentorDirectoryKey, data, mentorDirectoryTTL).Err(); err != nil {
				s.logger.Warn("Mentor directory cache write failed", zap.Error(err))
			}
		}
	}

	return mentors, nil
}

// Invalidate сбрасывает кэш каталога (вызывается при регистрации ментора)
func (s *DirectoryService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, mentorDirectoryKey).Err(); err != nil {
		s.logger.Warn("Mentor directory cache invalidation failed", zap.Error(err))
	}
}
