package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/mirror/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "attachment",
			ID:       "mirror_3",
		}
		assert.Equal(t, "attachment with ID mirror_3 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("attachment", "nightly")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.ErrorIs(t, wrapped, pkgerrors.ErrNotFound)
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "columns",
			Message: "duplicate column name",
		}
		assert.Equal(t, "validation failed for field columns: duplicate column name", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "record width mismatch"}
		assert.Equal(t, "validation failed: record width mismatch", err.Error())
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "classifier",
			Message:   "no key column shared with the ground",
		}
		assert.Equal(t, "configuration error in classifier: no key column shared with the ground", err.Error())
		assert.ErrorIs(t, err, pkgerrors.ErrConfiguration)
		assert.NotErrorIs(t, err, pkgerrors.ErrInvalidInput)
	})

	t.Run("formatted", func(t *testing.T) {
		err := pkgerrors.Configf("inspector", "unknown field %q", "age")
		assert.Contains(t, err.Error(), `unknown field "age"`)
		assert.True(t, errors.Is(err, pkgerrors.ErrConfiguration))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("strategy", "soundex")
		err := pkgerrors.NewConfigError("score", "unknown strategy", base)
		assert.ErrorIs(t, err, pkgerrors.ErrConfiguration)
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("building mirror: %w", pkgerrors.Configf("reconciler", "empty key set"))
		assert.ErrorIs(t, err, pkgerrors.ErrConfiguration)
	})
}

func TestUndefinedMetricError(t *testing.T) {
	err := pkgerrors.NewUndefinedMetricError("matched_rate", "ground volume")
	assert.Equal(t, "metric matched_rate is undefined: ground volume is zero", err.Error())
	assert.ErrorIs(t, err, pkgerrors.ErrUndefinedMetric)
	assert.NotErrorIs(t, err, pkgerrors.ErrConfiguration)

	bare := &pkgerrors.UndefinedMetricError{Metric: "assertivity"}
	assert.Equal(t, "metric assertivity is undefined", bare.Error())
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/metrics.prom", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "/data/metrics.prom")
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapIO("open", "ground.csv", errors.New("no such file"))
		var ioErr *pkgerrors.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "open", ioErr.Operation)
		assert.Equal(t, "ground.csv", ioErr.Path)
		assert.Nil(t, pkgerrors.WrapIO("open", "x", nil))
	})
}

func TestParseError(t *testing.T) {
	t.Run("with position", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "csv", File: "mirror.csv", Line: 3, Column: 2, Message: "wrong number of fields"}
		assert.Equal(t, "parse error in csv at mirror.csv:3:2: wrong number of fields", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("unexpected token")
		err := pkgerrors.WrapParse("json", "", base)
		assert.Equal(t, "json parse error: unexpected token", err.Error())
		assert.True(t, errors.Is(err, base))
	})
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("load", "dataset", "ground", pkgerrors.ErrNotFound)
	var resErr *pkgerrors.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "failed to load dataset ground: not found", err.Error())
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}
