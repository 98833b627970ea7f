package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"staffdir/infras/otel"
	"staffdir/infras/postgres"
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/room/model"
	"staffdir/shared"
	"staffdir/shared/constant"
	gDto "staffdir/shared/dto"
	"staffdir/shared/logger"
	gRepo "staffdir/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type roomRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Location  string         `db:"location"`
	Floor     string         `db:"floor"`
	Capacity  int            `db:"capacity"`
	Equipment pq.StringArray `db:"equipment"`
}

func (r roomRow) toModel(bookings []bookingModel.Booking) model.Room {
	if bookings == nil {
		bookings = []bookingModel.Booking{}
	}

	return model.Room{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Floor:     r.Floor,
		Capacity:  r.Capacity,
		Equipment: []string(r.Equipment),
		Bookings:  bookings,
	}
}

type bookingRow struct {
	ID           string    `db:"id"`
	RoomID       string    `db:"room_id"`
	EmployeeID   string    `db:"employee_id"`
	EmployeeName string    `db:"employee_name"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	Remarks      string    `db:"remarks"`
	CreatedAt    time.Time `db:"created_at"`
}

func newBookingRow(roomID string, b bookingModel.Booking) bookingRow {
	return bookingRow{
		ID:           b.ID,
		RoomID:       roomID,
		EmployeeID:   b.EmployeeID,
		EmployeeName: b.EmployeeName,
		StartTime:    b.StartTime.UTC(),
		EndTime:      b.EndTime.UTC(),
		Remarks:      b.Remarks,
		CreatedAt:    b.CreatedAt.UTC(),
	}
}

func (b bookingRow) toModel() bookingModel.Booking {
	return bookingModel.Booking{
		ID:           b.ID,
		EmployeeID:   b.EmployeeID,
		EmployeeName: b.EmployeeName,
		StartTime:    b.StartTime.UTC(),
		EndTime:      b.EndTime.UTC(),
		Remarks:      b.Remarks,
		CreatedAt:    b.CreatedAt.UTC(),
	}
}

type postgresRepository struct {
	rooms    gRepo.Repository[roomRow]
	bookings gRepo.Repository[bookingRow]
	db       *postgres.Connection
	otel     otel.Otel
}

// NewPostgres stores rooms in meeting_rooms and their bookings in
// room_bookings. Writes lock the room row for the whole read-check-write.
func NewPostgres(db *postgres.Connection, otel otel.Otel) Room {
	return &postgresRepository{
		rooms:    gRepo.NewRepository[roomRow](model.EntityName, model.TableName, model.FieldID, db, otel),
		bookings: gRepo.NewRepository[bookingRow](bookingModel.EntityName, bookingModel.TableName, bookingModel.FieldID, db, otel),
		db:       db,
		otel:     otel,
	}
}

func (repo *postgresRepository) GetAll(ctx context.Context, filter model.Filter) (res []model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.postgres.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if filter.Location != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldLocation, Value: filter.Location, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.Floor != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldFloor, Value: filter.Floor, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	rows, err := repo.rooms.GetAll(ctx, gDto.OrderBy(model.FieldPosition), group)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	res = make([]model.Room, 0, len(rows))
	if len(rows) == 0 {
		return res, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	bookingRows, err := repo.bookings.GetAll(ctx, gDto.OrderBy(bookingModel.FieldPosition), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldRoomID, Value: ids, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	byRoom := map[string][]bookingModel.Booking{}
	for _, b := range bookingRows {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b.toModel())
	}

	for _, row := range rows {
		res = append(res, row.toModel(byRoom[row.ID]))
	}

	return res, nil
}

func (repo *postgresRepository) Get(ctx context.Context, id string) (res model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.postgres.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	row, err := repo.rooms.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if row.ID == constant.Empty {
		return res, fmt.Errorf("%w: %s", bookingModel.ErrRoomNotFound, id)
	}

	bookingRows, err := repo.bookings.GetAll(ctx, gDto.OrderBy(bookingModel.FieldPosition),
		shared.FilterByID(id, bookingModel.FieldRoomID, bookingModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	bookings := make([]bookingModel.Booking, 0, len(bookingRows))
	for _, b := range bookingRows {
		bookings = append(bookings, b.toModel())
	}

	return row.toModel(bookings), nil
}

func (repo *postgresRepository) IDs(ctx context.Context) (ids []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.postgres.IDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids, err = repo.rooms.Keys(ctx, gDto.OrderBy(model.FieldPosition))
	if err != nil {
		return nil, fmt.Errorf("failed to list room ids: %w", err)
	}

	return ids, nil
}

func (repo *postgresRepository) Update(ctx context.Context, id string, fn Mutation) (res model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.postgres.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	current, err := repo.lockRoom(ctx, tx, id)
	if err != nil {
		return res, err
	}

	working := current.Clone()
	if err = fn(&working); err != nil {
		return res, err
	}

	if err = repo.applyDiff(ctx, tx, id, current.Bookings, working.Bookings); err != nil {
		return res, err
	}

	if err = tx.Commit(); err != nil {
		return res, translate(fmt.Errorf("failed to commit booking changes: %w", err))
	}

	return working, nil
}

func (repo *postgresRepository) lockRoom(ctx context.Context, tx *sqlx.Tx, id string) (model.Room, error) {
	row, err := repo.rooms.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return model.Room{}, fmt.Errorf("failed to lock room: %w", err)
	}

	if row.ID == constant.Empty {
		return model.Room{}, fmt.Errorf("%w: %s", bookingModel.ErrRoomNotFound, id)
	}

	rows, err := repo.bookings.GetAllTx(ctx, tx, gDto.OrderBy(bookingModel.FieldPosition),
		shared.FilterByID(id, bookingModel.FieldRoomID, bookingModel.TableName))
	if err != nil {
		return model.Room{}, fmt.Errorf("failed to load bookings: %w", err)
	}

	bookings := make([]bookingModel.Booking, 0, len(rows))
	for _, b := range rows {
		bookings = append(bookings, b.toModel())
	}

	return row.toModel(bookings), nil
}

// applyDiff turns the before/after booking lists into deletes and inserts.
// Bookings are never edited in place, so identity by id is enough.
func (repo *postgresRepository) applyDiff(ctx context.Context, tx *sqlx.Tx, roomID string, before, after []bookingModel.Booking) error {
	kept := map[string]struct{}{}
	for _, b := range after {
		kept[b.ID] = struct{}{}
	}

	existing := map[string]struct{}{}
	removed := []string{}

	for _, b := range before {
		existing[b.ID] = struct{}{}

		if _, ok := kept[b.ID]; !ok {
			removed = append(removed, b.ID)
		}
	}

	if len(removed) > 0 {
		err := repo.bookings.DeleteTx(ctx, tx, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: bookingModel.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq},
				gDto.Filter{Field: bookingModel.FieldID, Value: removed, Operator: gDto.FilterOperatorIn},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete bookings: %w", err)
		}
	}

	added := []bookingRow{}

	for _, b := range after {
		if _, ok := existing[b.ID]; !ok {
			added = append(added, newBookingRow(roomID, b))
		}
	}

	if len(added) == 0 {
		return nil
	}

	if err := repo.bookings.InsertBulkTx(ctx, tx, added); err != nil {
		return translate(err)
	}

	return nil
}

func (repo *postgresRepository) Seed(ctx context.Context, rooms []model.Room) (inserted int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.postgres.Seed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	for _, room := range rooms {
		exist, err := repo.rooms.Exist(ctx, shared.FilterByID(room.ID, model.FieldID, model.TableName))
		if err != nil {
			return inserted, fmt.Errorf("failed to check room %s: %w", room.ID, err)
		}

		if exist {
			continue
		}

		err = repo.rooms.Insert(ctx, roomRow{
			ID:        room.ID,
			Name:      room.Name,
			Location:  room.Location,
			Floor:     room.Floor,
			Capacity:  room.Capacity,
			Equipment: pq.StringArray(room.Equipment),
		})
		if err != nil {
			return inserted, fmt.Errorf("failed to seed room %s: %w", room.ID, err)
		}

		inserted++
	}

	return inserted, nil
}

// translate maps the room_bookings exclusion constraint onto a booking
// conflict so a lost race reads the same as a detected overlap.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
		return fmt.Errorf("%w: %s", bookingModel.ErrTimeConflict, pqErr.Constraint)
	}

	return err
}
