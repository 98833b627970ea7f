package repository

import (
	"context"
	"errors"
	"fmt"
	"staffdir/infras/mongo"
	"staffdir/infras/otel"
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/room/model"
	"staffdir/shared/constant"
	"staffdir/shared/failure"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	mongoDriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionRooms = "meeting_rooms"

// ErrContention is returned when a room kept changing underneath every
// compare-and-swap attempt.
var ErrContention = failure.Unavailable("room is busy, try again")

type roomDocument struct {
	model.Room `bson:",inline"`
	Position   int64 `bson:"position"`
	Version    int64 `bson:"version"`
}

type mongoRepository struct {
	collection *mongoDriver.Collection
	maxRetries int
	otel       otel.Otel
}

// NewMongo keeps each room as one document with its bookings embedded. Writes
// are a compare-and-swap on the document version.
func NewMongo(conn *mongo.Connection, maxRetries int, otel otel.Otel) Room {
	return &mongoRepository{
		collection: conn.Database.Collection(collectionRooms),
		maxRetries: max(maxRetries, 1),
		otel:       otel,
	}
}

func (repo *mongoRepository) GetAll(ctx context.Context, filter model.Filter) (res []model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.mongo.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := bson.M{}
	if filter.Location != constant.Empty {
		query[model.FieldLocation] = filter.Location
	}

	if filter.Floor != constant.Empty {
		query[model.FieldFloor] = filter.Floor
	}

	cursor, err := repo.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: model.FieldPosition, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []roomDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	res = make([]model.Room, 0, len(docs))
	for _, doc := range docs {
		res = append(res, normalize(doc.Room))
	}

	return res, nil
}

func (repo *mongoRepository) find(ctx context.Context, id string) (roomDocument, error) {
	var doc roomDocument

	err := repo.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongoDriver.ErrNoDocuments) {
		return doc, fmt.Errorf("%w: %s", bookingModel.ErrRoomNotFound, id)
	}

	if err != nil {
		return doc, fmt.Errorf("failed to find room: %w", err)
	}

	doc.Room = normalize(doc.Room)

	return doc, nil
}

func (repo *mongoRepository) Get(ctx context.Context, id string) (res model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.mongo.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	doc, err := repo.find(ctx, id)
	if err != nil {
		return res, err
	}

	return doc.Room, nil
}

func (repo *mongoRepository) IDs(ctx context.Context) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.mongo.IDs")
	defer scope.End()

	opts := options.Find().
		SetSort(bson.D{{Key: model.FieldPosition, Value: 1}}).
		SetProjection(bson.M{"_id": 1})

	cursor, err := repo.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to query room ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}

	if err := cursor.All(ctx, &docs); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to decode room ids: %w", err)
	}

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	return ids, nil
}

func (repo *mongoRepository) Update(ctx context.Context, id string, fn Mutation) (res model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.mongo.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	for attempt := 1; attempt <= repo.maxRetries; attempt++ {
		doc, err := repo.find(ctx, id)
		if err != nil {
			return res, err
		}

		working := doc.Room.Clone()
		if err := fn(&working); err != nil {
			return res, err
		}

		result, err := repo.collection.UpdateOne(ctx,
			bson.M{"_id": id, model.FieldVersion: doc.Version},
			bson.M{
				"$set": bson.M{model.FieldBookings: normalize(working).Bookings},
				"$inc": bson.M{model.FieldVersion: 1},
			},
		)
		if err != nil {
			return res, fmt.Errorf("failed to update room: %w", err)
		}

		if result.MatchedCount == 1 {
			return working, nil
		}

		log.Debug().Str("room_id", id).Int("attempt", attempt).Msg("room version moved, retrying")
	}

	return res, fmt.Errorf("%w: %s", ErrContention, id)
}

func (repo *mongoRepository) Seed(ctx context.Context, rooms []model.Room) (inserted int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.mongo.Seed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	base, err := repo.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	for i, room := range rooms {
		doc := roomDocument{Room: normalize(room.Clone()), Position: base + int64(i)}

		_, err := repo.collection.InsertOne(ctx, doc)
		if mongoDriver.IsDuplicateKeyError(err) {
			continue
		}

		if err != nil {
			return inserted, fmt.Errorf("failed to seed room %s: %w", room.ID, err)
		}

		inserted++
	}

	return inserted, nil
}

// normalize stores and returns empty lists rather than nulls.
func normalize(room model.Room) model.Room {
	if room.Bookings == nil {
		room.Bookings = []bookingModel.Booking{}
	}

	if room.Equipment == nil {
		room.Equipment = []string{}
	}

	for i := range room.Bookings {
		room.Bookings[i].StartTime = room.Bookings[i].StartTime.UTC()
		room.Bookings[i].EndTime = room.Bookings[i].EndTime.UTC()
		room.Bookings[i].CreatedAt = room.Bookings[i].CreatedAt.UTC()
	}

	return room
}
