package service

import (
	"context"
	"fmt"

	"staffdir/config"
	"staffdir/infras/otel"
	"staffdir/internal/domains/room/model"
	"staffdir/internal/domains/room/model/dto"
	"staffdir/internal/domains/room/repository"
	"staffdir/shared"
	"staffdir/shared/cache"
	"staffdir/shared/constant"
	"staffdir/shared/timezone"

	"github.com/rs/zerolog/log"
)

// CachePrefix covers every cached room read.
const CachePrefix = "room:"

const (
	cacheGetRoom    = CachePrefix + "get"
	cacheGetAllRoom = CachePrefix + "gets"
)

// RoomCacheKey is the cache entry of a single room read.
func RoomCacheKey(id string) string {
	return shared.BuildCacheKey(cacheGetRoom, id)
}

// ListCachePrefix covers every cached room listing, whatever the filter.
const ListCachePrefix = cacheGetAllRoom

type Room interface {
	List(ctx context.Context, filter model.Filter) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	clock timezone.Clock
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock timezone.Clock) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		clock: clock,
	}
}

// List returns rooms in insertion order. Only stored fields are cached; status
// is derived after the read so a cached list never carries a stale status.
func (s *serviceImpl) List(ctx context.Context, filter model.Filter) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAllRoom, filter.Location, filter.Floor)

	var rooms []model.Room

	if err = s.cache.Get(ctx, cacheKey, &rooms); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")
	} else {
		rooms, err = s.repo.GetAll(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get rooms")

			return nil, fmt.Errorf("failed to get rooms: %w", err)
		}

		if err := s.cache.Save(ctx, cacheKey, rooms, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}

	now := s.clock()
	res = []dto.RoomResponse{}

	for _, room := range dto.FromModels(rooms, now) {
		if filter.Status != constant.Empty && room.Status != filter.Status {
			continue
		}

		res = append(res, room)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := RoomCacheKey(id)

	var room model.Room

	if err = s.cache.Get(ctx, cacheKey, &room); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")
	} else {
		room, err = s.repo.Get(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("room_id", id).Msg("failed to get room")

			return res, fmt.Errorf("failed to get room: %w", err)
		}

		if err := s.cache.Save(ctx, cacheKey, room, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}

	res.FromModel(room, s.clock())

	return res, nil
}
