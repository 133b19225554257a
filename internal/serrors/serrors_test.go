package serrors_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wandercritic/internal/serrors"
)

func TestError_MatchesKindAndCause(t *testing.T) {
	err := serrors.Wrap(serrors.ErrNotFound, sql.ErrNoRows, "place %d", 7)

	assert.ErrorIs(t, err, serrors.ErrNotFound)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NotErrorIs(t, err, serrors.ErrConflict)
	assert.Equal(t, "place 7: sql: no rows in result set", err.Error())
	assert.Equal(t, "place 7", err.Message())
}

func TestError_Formatting(t *testing.T) {
	assert.Equal(t, "rating must be between 1 and 5", serrors.With(serrors.ErrBadRequest, "rating must be between 1 and 5").Error())
	assert.Equal(t, "boom", serrors.Wrap(serrors.ErrInternal, errors.New("boom"), "").Error())

	var nilErr *serrors.Error
	assert.Equal(t, "<nil>", nilErr.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want serrors.Kind
	}{
		{"semantic error", serrors.With(serrors.ErrForbidden, "nope"), serrors.ErrForbidden},
		{"wrapped semantic error", fmt.Errorf("handler: %w", serrors.With(serrors.ErrConflict, "dup")), serrors.ErrConflict},
		{"bare kind", serrors.ErrUnauthorized, serrors.ErrUnauthorized},
		{"plain error", errors.New("db down"), serrors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serrors.KindOf(tt.err))
		})
	}
}
