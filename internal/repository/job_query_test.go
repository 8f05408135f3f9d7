package repository

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/internal/database"

	"jobly/pkg/models"
	"jobly/pkg/utils"
)

func TestBuildFindAllQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    models.JobFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:   "no filters means no where clause",
			filter: models.JobFilter{},
		},
		{
			name:      "min salary",
			filter:    models.JobFilter{MinSalary: utils.Ptr(1500)},
			wantWhere: " WHERE j.salary >= $1",
			wantArgs:  []any{1500},
		},
		{
			name:      "has equity true",
			filter:    models.JobFilter{HasEquity: utils.Ptr(true)},
			wantWhere: " WHERE j.equity > 0",
		},
		{
			name:   "has equity false imposes nothing",
			filter: models.JobFilter{HasEquity: utils.Ptr(false)},
		},
		{
			name:      "title is wrapped in wildcards",
			filter:    models.JobFilter{Title: utils.Ptr("j1")},
			wantWhere: " WHERE j.title ILIKE $1",
			wantArgs:  []any{"%j1%"},
		},
		{
			name: "all filters are anded with aligned placeholders",
			filter: models.JobFilter{
				MinSalary: utils.Ptr(1500),
				HasEquity: utils.Ptr(true),
				Title:     utils.Ptr("J"),
			},
			wantWhere: " WHERE j.salary >= $1 AND j.equity > 0 AND j.title ILIKE $2",
			wantArgs:  []any{1500, "%J%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildFindAllQuery(tt.filter)

			if tt.wantWhere == "" {
				assert.NotContains(t, query, "WHERE")
			} else {
				assert.Contains(t, query, tt.wantWhere+" ORDER BY")
			}
			assert.Equal(t, tt.wantArgs, args)
			assert.Contains(t, query, "ORDER BY j.title")
		})
	}
}

func TestUpdateFields(t *testing.T) {
	t.Run("only set fields in fixed order", func(t *testing.T) {
		fields := updateFields(models.JobUpdate{
			Equity: models.Some("0.5"),
			Title:  models.Some("New"),
		})

		assert.Len(t, fields, 2)
		assert.Equal(t, "title", fields[0].Name)
		assert.Equal(t, "New", fields[0].Value)
		assert.Equal(t, "equity", fields[1].Name)
		assert.Equal(t, "0.5", fields[1].Value)
	})

	t.Run("explicit nulls are kept as nil values", func(t *testing.T) {
		fields := updateFields(models.JobUpdate{Salary: models.Null[int]()})

		assert.Len(t, fields, 1)
		assert.Equal(t, "salary", fields[0].Name)
		assert.Nil(t, fields[0].Value)
	})

	t.Run("empty update yields no fields", func(t *testing.T) {
		assert.Empty(t, updateFields(models.JobUpdate{}))
	})
}

func TestStorageError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "foreign key names the missing company",
			err:     fmt.Errorf("insert: %w", &pgconn.PgError{Code: database.PgForeignKeyViolationErrCode}),
			code:    http.StatusBadRequest,
			message: "Company does not exist",
		},
		{
			name:    "check violation is a constraint violation",
			err:     &pgconn.PgError{Code: database.PgCheckViolationErrCode},
			code:    http.StatusBadRequest,
			message: "Constraint violation",
		},
		{
			name:    "anything else is a storage failure",
			err:     errors.New("connection reset"),
			code:    http.StatusInternalServerError,
			message: "Storage failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ce *utils.CustomError
			require.ErrorAs(t, storageError(tt.err), &ce)

			assert.Equal(t, utils.StorageFailure, ce.Kind)
			assert.Equal(t, tt.code, ce.Code)
			assert.Equal(t, tt.message, ce.Message)
			assert.ErrorIs(t, ce, tt.err)
		})
	}
}
