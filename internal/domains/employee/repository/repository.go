package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"staffdir/config"
	"staffdir/infras/mongo"
	"staffdir/infras/otel"
	"staffdir/infras/postgres"
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/employee/model"
	"staffdir/shared"
	"staffdir/shared/constant"
	gRepo "staffdir/shared/repository"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	mongoDriver "go.mongodb.org/mongo-driver/mongo"
)

const collectionEmployees = "employees"

// Employee resolves employee ids. Get returns ErrEmployeeNotFound for unknown ids.
type Employee interface {
	Get(ctx context.Context, id string) (model.Employee, error)
	Seed(ctx context.Context, employees []model.Employee) (int, error)
}

func New(cfg *config.Config, pg *postgres.Connection, mg *mongo.Connection, otel otel.Otel) Employee {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return NewPostgres(pg, otel)
	case config.DriverMongo:
		return NewMongo(mg, otel)
	default:
		return NewMemory()
	}
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", bookingModel.ErrEmployeeNotFound, id)
}

type memoryRepository struct {
	mu        sync.RWMutex
	employees map[string]model.Employee
}

func NewMemory() Employee {
	return &memoryRepository{employees: map[string]model.Employee{}}
}

func (repo *memoryRepository) Get(_ context.Context, id string) (model.Employee, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	employee, ok := repo.employees[id]
	if !ok {
		return model.Employee{}, notFound(id)
	}

	return employee, nil
}

func (repo *memoryRepository) Seed(_ context.Context, employees []model.Employee) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	inserted := 0

	for _, employee := range employees {
		if _, ok := repo.employees[employee.ID]; ok {
			continue
		}

		repo.employees[employee.ID] = employee
		inserted++
	}

	return inserted, nil
}

type postgresRepository struct {
	gRepo.Repository[model.Employee]
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Employee {
	return &postgresRepository{
		Repository: gRepo.NewRepository[model.Employee](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (repo *postgresRepository) Get(ctx context.Context, id string) (model.Employee, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".employee.postgres.Get")
	defer scope.End()

	employee, err := repo.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		scope.TraceError(err)

		return employee, fmt.Errorf("failed to get employee: %w", err)
	}

	if employee.ID == constant.Empty {
		return employee, notFound(id)
	}

	return employee, nil
}

func (repo *postgresRepository) Seed(ctx context.Context, employees []model.Employee) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".employee.postgres.Seed")
	defer scope.End()

	inserted := 0

	for _, employee := range employees {
		exist, err := repo.Exist(ctx, shared.FilterByID(employee.ID, model.FieldID, model.TableName))
		if err != nil {
			scope.TraceError(err)

			return inserted, fmt.Errorf("failed to check employee %s: %w", employee.ID, err)
		}

		if exist {
			continue
		}

		if err := repo.Insert(ctx, employee); err != nil {
			scope.TraceError(err)

			return inserted, fmt.Errorf("failed to seed employee %s: %w", employee.ID, err)
		}

		inserted++
	}

	return inserted, nil
}

type mongoRepository struct {
	collection *mongoDriver.Collection
	otel       otel.Otel
}

func NewMongo(conn *mongo.Connection, otel otel.Otel) Employee {
	return &mongoRepository{
		collection: conn.Database.Collection(collectionEmployees),
		otel:       otel,
	}
}

func (repo *mongoRepository) Get(ctx context.Context, id string) (model.Employee, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".employee.mongo.Get")
	defer scope.End()

	var employee model.Employee

	err := repo.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if errors.Is(err, mongoDriver.ErrNoDocuments) {
		return employee, notFound(id)
	}

	if err != nil {
		scope.TraceError(err)

		return employee, fmt.Errorf("failed to find employee: %w", err)
	}

	return employee, nil
}

func (repo *mongoRepository) Seed(ctx context.Context, employees []model.Employee) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".employee.mongo.Seed")
	defer scope.End()

	inserted := 0

	for _, employee := range employees {
		_, err := repo.collection.InsertOne(ctx, employee)
		if mongoDriver.IsDuplicateKeyError(err) {
			continue
		}

		if err != nil {
			scope.TraceError(err)

			return inserted, fmt.Errorf("failed to seed employee %s: %w", employee.ID, err)
		}

		inserted++
	}

	return inserted, nil
}
