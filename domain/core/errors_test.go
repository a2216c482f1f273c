package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructorsWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, NewInsufficientDataError("variance", 2, 1), ErrInsufficientData)
	assert.ErrorIs(t, NewLengthMismatchError(3, 4), ErrLengthMismatch)
	assert.ErrorIs(t, NewOutOfRangeError(-1), ErrOutOfRange)
	assert.ErrorIs(t, NewEmptyPartitionError("Low"), ErrEmptyPartition)
	assert.ErrorIs(t, NewInvalidArgumentError("alpha", "must lie in (0,1)"), ErrInvalidArgument)

	assert.Contains(t, NewInsufficientDataError("variance", 2, 1).Error(), "at least 2")
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsDegenerate(ErrZeroVariance))
	assert.True(t, IsDegenerate(ErrDegenerateDistribution))
	assert.False(t, IsDegenerate(ErrInsufficientData))

	assert.True(t, IsInputError(NewLengthMismatchError(1, 2)))
	assert.True(t, IsLoadError(ErrMissingColumn))
	assert.False(t, IsLoadError(errors.New("other")))
	assert.True(t, IsInsufficientData(NewInsufficientDataError("mean", 1, 0)))
}
