package service

import (
	"context"
	"strconv"
	"training_platform_backend/internal/repository"
	"training_platform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardKey = "leaderboard:points"

// LeaderboardService keeps the durable point total on the user row and a
// redis sorted set for ranking reads.
type LeaderboardService struct {
	Users *repository.UserRepository
	Redis *redis.Client
}

func NewLeaderboardService(users *repository.UserRepository, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{Users: users, Redis: rdb}
}

// AddPoints credits a user. The database is the source of truth; the
// sorted set is best effort and rebuilt lazily from it.
func (s *LeaderboardService) AddPoints(userID uint, points int, reason string) error {
	if err := s.Users.AddPoints(userID, points); err != nil {
		return err
	}

	logger.Log.Info("points awarded",
		zap.Uint("userId", userID), zap.Int("points", points), zap.String("reason", reason))

	if s.Redis != nil {
		if err := s.Redis.ZIncrBy(context.Background(), leaderboardKey, float64(points), strconv.FormatUint(uint64(userID), 10)).Err(); err != nil {
			logger.Log.Warn("leaderboard zset update failed", zap.Error(err))
		}
	}
	return nil
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Top returns the highest scoring users. Redis is consulted first; on a
// miss or empty set it falls back to the database and repopulates the set.
func (s *LeaderboardService) Top(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.Redis != nil {
		ctx := context.Background()
		zs, err := s.Redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
		if err == nil && len(zs) > 0 {
			entries := make([]LeaderboardEntry, 0, len(zs))
			for i, z := range zs {
				id, _ := strconv.ParseUint(z.Member.(string), 10, 32)
				entry := LeaderboardEntry{Rank: i + 1, UserID: uint(id), Points: int(z.Score)}
				if user, err := s.Users.FindByID(uint(id)); err == nil {
					entry.Name = user.FullName()
				}
				entries = append(entries, entry)
			}
			return entries, nil
		}
	}

	users, err := s.Users.TopByPoints(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i := range users {
		entries[i] = LeaderboardEntry{
			Rank:   i + 1,
			UserID: users[i].ID,
			Name:   users[i].FullName(),
			Points: users[i].Points,
		}
		if s.Redis != nil {
			s.Redis.ZAdd(context.Background(), leaderboardKey, &redis.Z{
				Score:  float64(users[i].Points),
				Member: strconv.FormatUint(uint64(users[i].ID), 10),
			})
		}
	}
	return entries, nil
}

// Rank returns the 1-based position of a user, or 0 when unranked.
func (s *LeaderboardService) Rank(userID uint) int {
	if s.Redis == nil {
		return 0
	}
	rank, err := s.Redis.ZRevRank(context.Background(), leaderboardKey, strconv.FormatUint(uint64(userID), 10)).Result()
	if err != nil {
		return 0
	}
	return int(rank) + 1
}
