package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResult_Values_SuccessesInIndexOrder(t *testing.T) {
	t.Parallel()

	r := Result[string]{
		{Index: 0, Value: "a"},
		{Index: 1, Err: errors.New("boom")},
		{Index: 2, Value: "c"},
	}
	require.Equal(t, []string{"a", "c"}, r.Values())
}

func TestResult_Failed(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := Result[int]{
		{Index: 0, Value: 1},
		{Index: 1, Err: newIndexedError(boom, 1)},
	}

	failed := r.Failed()
	require.Len(t, failed, 1)
	require.Equal(t, 1, failed[0].Index)
	require.True(t, failed[0].Failed())
	require.False(t, r[0].Failed())
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	r := Result[int]{{Index: 0, Value: 1}, {Index: 1, Value: 2}}
	require.NoError(t, r.Err())

	boom := errors.New("boom")
	r = append(r, Outcome[int]{Index: 2, Err: newIndexedError(boom, 2)})
	err := r.Err()
	require.ErrorIs(t, err, boom)

	idx, ok := FailedIndex(err)
	require.True(t, ok)
	require.Equal(t, 2, idx)
}
