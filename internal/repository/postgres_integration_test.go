//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"recycling-api/internal/migrations"
	"recycling-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	require.NoError(t, migrations.Up(connString))

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func newPoint(name, wasteType string, fill int, created time.Time) models.RecyclingPoint {
	return models.RecyclingPoint{
		Name:          name,
		Latitude:      -33.4378,
		Longitude:     -70.6505,
		FillLevel:     fill,
		WasteType:     wasteType,
		LastEmptiedAt: created,
		CreatedAt:     created,
	}
}

func TestRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	// Create
	saved, err := repo.CreatePoint(ctx, newPoint("Plaza de Armas", "Glass", 40, created))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, 40, saved.FillLevel)
	assert.True(t, created.Equal(saved.CreatedAt))

	// Get
	got, err := repo.GetPoint(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plaza de Armas", got.Name)

	// Update
	emptied := created.Add(48 * time.Hour)
	got.FillLevel = 0
	got.LastEmptiedAt = emptied
	got.CreatedAt = emptied
	updated, err := repo.UpdatePoint(ctx, *got)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.FillLevel)
	assert.True(t, emptied.Equal(updated.LastEmptiedAt))
	assert.True(t, created.Equal(updated.CreatedAt), "created_at must not change")

	// Delete
	require.NoError(t, repo.DeletePoint(ctx, saved.ID))
	_, err = repo.GetPoint(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeletePoint(ctx, saved.ID), ErrNotFound)

	_, err = repo.UpdatePoint(ctx, models.RecyclingPoint{ID: saved.ID, Name: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListPoints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	for _, p := range []models.RecyclingPoint{
		newPoint("Plaza de Armas", "Glass", 10, created),
		newPoint("Mercado Central", "Plastic", 20, created),
		newPoint("Parque Forestal", "Glass", 30, created),
		newPoint("Plaza 100%", "Cardboard", 50, created),
	} {
		_, err := repo.CreatePoint(ctx, p)
		require.NoError(t, err)
	}

	names := func(points []models.RecyclingPoint) []string {
		out := []string{}
		for _, p := range points {
			out = append(out, p.Name)
		}
		return out
	}

	tests := []struct {
		name     string
		filter   models.PointFilter
		expected []string
	}{
		{
			name:     "no filter",
			expected: []string{"Plaza de Armas", "Mercado Central", "Parque Forestal", "Plaza 100%"},
		},
		{
			name:     "by waste type",
			filter:   models.PointFilter{WasteType: "Glass"},
			expected: []string{"Plaza de Armas", "Parque Forestal"},
		},
		{
			name:     "by name, case insensitive",
			filter:   models.PointFilter{Name: "plaza"},
			expected: []string{"Plaza de Armas", "Plaza 100%"},
		},
		{
			name:     "like wildcards are literal",
			filter:   models.PointFilter{Name: "%"},
			expected: []string{"Plaza 100%"},
		},
		{
			name:     "combined",
			filter:   models.PointFilter{WasteType: "Glass", Name: "parque"},
			expected: []string{"Parque Forestal"},
		},
		{
			name:     "no results",
			filter:   models.PointFilter{WasteType: "Metal"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := repo.ListPoints(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(points))
		})
	}
}
