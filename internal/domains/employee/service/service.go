package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Employee=MockEmployeeService

import (
	"context"
	"fmt"
	"staffdir/infras/otel"
	"staffdir/internal/domains/employee/model/dto"
	"staffdir/internal/domains/employee/repository"
	"staffdir/shared/constant"

	"github.com/rs/zerolog/log"
)

// Employee is the directory lookup bookings depend on.
type Employee interface {
	Lookup(ctx context.Context, id string) (dto.EmployeeResponse, error)
}

type serviceImpl struct {
	repo repository.Employee
	otel otel.Otel
}

func New(repo repository.Employee, otel otel.Otel) Employee {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Lookup(ctx context.Context, id string) (res dto.EmployeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".employee.Lookup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	employee, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("employee_id", id).Msg("employee lookup failed")

		return res, fmt.Errorf("failed to look up employee: %w", err)
	}

	res.FromModel(employee)

	return res, nil
}
