package repository_test

import (
	"context"
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/employee/model"
	"staffdir/internal/domains/employee/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SeedAndGet(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	inserted, err := repo.Seed(ctx, []model.Employee{
		{ID: "E001", Name: "Siti Rahma", Department: "Engineering"},
		{ID: "E002", Name: "Budi Santoso", Department: "Finance"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = repo.Seed(ctx, []model.Employee{{ID: "E001", Name: "Someone Else"}})
	require.NoError(t, err)
	assert.Zero(t, inserted)

	employee, err := repo.Get(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, "Siti Rahma", employee.Name)

	_, err = repo.Get(ctx, "E999")
	assert.ErrorIs(t, err, bookingModel.ErrEmployeeNotFound)
}
