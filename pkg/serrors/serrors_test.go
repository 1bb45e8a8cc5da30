package serrors_test

import (
	"errors"
	"fmt"
	"storefront/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
		serrors.ErrUnavailable,
		serrors.ErrRateLimited,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrUnavailable, "domain check failed with status %d", 502)
	require.Equal(t, "domain check failed with status 502", e1.Error())

	e2 := serrors.Wrap(serrors.ErrUnavailable, base, "checking domain")
	require.Equal(t, "checking domain: connection refused", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrConflict)
	require.Equal(t, "CONFLICT", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrBadRequest, base, "decoding")

	require.ErrorIs(t, e, serrors.ErrBadRequest)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrConflict)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrBadRequest, base, "decoding")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrBadRequest, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrInternal, base, "illegal transition")
	require.Equal(t, serrors.ErrInternal, e.Kind())
	require.Equal(t, "illegal transition", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", serrors.With(serrors.ErrConflict, "busy"))
	require.Equal(t, serrors.ErrConflict, serrors.KindOf(wrapped))
	require.Nil(t, serrors.KindOf(errors.New("plain")))
}
