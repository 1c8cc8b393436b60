package serrors_test

import (
	"errors"
	"testing"

	goerrors "github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoku/guildmaster/pkg/serrors"
)

func TestBaseError_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, serrors.KindNotFound, serrors.NotFound("X", "x").Kind())
	assert.Equal(t, serrors.KindInvalidArgument, serrors.InvalidArgument("X", "x").Kind())
	assert.Equal(t, serrors.KindPermissionDenied, serrors.PermissionDenied("X", "x").Kind())
	assert.Equal(t, serrors.KindConflict, serrors.Conflict("X", "x").Kind())
	assert.Equal(t, serrors.KindInternal, serrors.NewError("X", "x").Kind())
	assert.Equal(t, serrors.KindInternal, (&serrors.BaseError{}).Kind())
}

func TestBaseError_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	sentinel := serrors.NotFound("THING_NOT_FOUND", "thing not found")
	wrapped := goerrors.Wrap(sentinel, "loading thing")

	require.ErrorIs(t, wrapped, sentinel)

	var base *serrors.BaseError
	require.True(t, errors.As(wrapped, &base))
	assert.Equal(t, "THING_NOT_FOUND", base.Code)
	assert.Equal(t, serrors.KindNotFound, base.Kind())
}
