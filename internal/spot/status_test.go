package spot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveTaskStatus(t *testing.T) {
	require.Equal(t, TaskGraded, DeriveTaskStatus(TaskFacts{HasStatusPanel: true, HasScoreRow: true}))
	require.Equal(t, TaskSubmitted, DeriveTaskStatus(TaskFacts{HasStatusPanel: true}))
	require.Equal(t, TaskNotSubmitted, DeriveTaskStatus(TaskFacts{}))
	require.Equal(t, TaskNotSubmitted, DeriveTaskStatus(TaskFacts{HasScoreRow: true}))
}

func TestDeriveAccessibility(t *testing.T) {
	require.True(t, DeriveAccessibility(true))
	require.False(t, DeriveAccessibility(false))
}

func TestTaskStatusText(t *testing.T) {
	for _, status := range []TaskStatus{TaskNotSubmitted, TaskSubmitted, TaskGraded, TaskPending} {
		text, err := status.MarshalText()
		require.NoError(t, err)

		var decoded TaskStatus
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, status, decoded)
	}

	require.Equal(t, "NotSubmitted", TaskStatus(0).String())
	_, err := TaskStatus(42).MarshalText()
	require.Error(t, err)

	var status TaskStatus
	require.Error(t, status.UnmarshalText([]byte("Late")))
}
