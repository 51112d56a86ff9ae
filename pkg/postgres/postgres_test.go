package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDayConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "per-day unique index",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: dayUniqueConstraint},
			want: true,
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("failed to insert assignment: %w", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: dayUniqueConstraint}),
			want: true,
		},
		{
			name: "primary key violation",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "assignment_pkey"},
			want: false,
		},
		{
			name: "check violation",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: dayUniqueConstraint},
			want: false,
		},
		{
			name: "not a postgres error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDayConflict(tt.err))
		})
	}
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	require.NotNil(t, nullable("11 9999"))
	assert.Equal(t, "11 9999", *nullable("11 9999"))

	assert.Equal(t, "", fromNullable(nil))
	phone := "11 9999"
	assert.Equal(t, phone, fromNullable(&phone))
}

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	versions := []uint{first}
	for v := first; ; {
		next, err := source.Next(v)
		if err != nil {
			break
		}
		versions = append(versions, next)
		v = next
	}
	assert.Equal(t, []uint{1, 2, 3}, versions)

	// Every version can be rolled back
	for _, v := range versions {
		down, identifier, err := source.ReadDown(v)
		require.NoError(t, err, "version %d", v)
		assert.NotEmpty(t, identifier)
		require.NoError(t, down.Close())
	}
}
