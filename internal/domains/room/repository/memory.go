package repository

import (
	"context"
	"fmt"
	"staffdir/infras/otel"
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/room/model"
	"staffdir/shared/constant"
	"sync"
)

type memoryEntry struct {
	mu   sync.Mutex
	room model.Room
}

type memoryRepository struct {
	mu    sync.RWMutex
	order []string
	rooms map[string]*memoryEntry
	otel  otel.Otel
}

// NewMemory returns an in-process store. Each room carries its own lock, so
// writers on different rooms never wait on each other.
func NewMemory(otel otel.Otel) Room {
	return &memoryRepository{
		rooms: map[string]*memoryEntry{},
		otel:  otel,
	}
}

func (repo *memoryRepository) entries() []*memoryEntry {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]*memoryEntry, 0, len(repo.order))
	for _, id := range repo.order {
		out = append(out, repo.rooms[id])
	}

	return out
}

func (repo *memoryRepository) entry(id string) (*memoryEntry, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	e, ok := repo.rooms[id]

	return e, ok
}

func (repo *memoryRepository) GetAll(ctx context.Context, filter model.Filter) ([]model.Room, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.memory.GetAll")
	defer scope.End()

	rooms := []model.Room{}

	for _, e := range repo.entries() {
		e.mu.Lock()
		room := e.room.Clone()
		e.mu.Unlock()

		if filter.Match(room) {
			rooms = append(rooms, room)
		}
	}

	return rooms, nil
}

func (repo *memoryRepository) Get(ctx context.Context, id string) (model.Room, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.memory.Get")
	defer scope.End()

	e, ok := repo.entry(id)
	if !ok {
		return model.Room{}, fmt.Errorf("%w: %s", bookingModel.ErrRoomNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.room.Clone(), nil
}

func (repo *memoryRepository) IDs(_ context.Context) ([]string, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return append([]string(nil), repo.order...), nil
}

func (repo *memoryRepository) Update(ctx context.Context, id string, fn Mutation) (model.Room, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.memory.Update")
	defer scope.End()

	e, ok := repo.entry(id)
	if !ok {
		return model.Room{}, fmt.Errorf("%w: %s", bookingModel.ErrRoomNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.room.Clone()
	if err := fn(&working); err != nil {
		return model.Room{}, err
	}

	e.room = working

	return working.Clone(), nil
}

func (repo *memoryRepository) Seed(ctx context.Context, rooms []model.Room) (int, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.memory.Seed")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	inserted := 0

	for _, room := range rooms {
		if _, exists := repo.rooms[room.ID]; exists {
			continue
		}

		repo.rooms[room.ID] = &memoryEntry{room: room.Clone()}
		repo.order = append(repo.order, room.ID)
		inserted++
	}

	return inserted, nil
}
