package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInPortal(t *testing.T) {
	naive := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	local := InPortal(naive)

	require.Equal(t, 10, local.Hour())
	require.Equal(t, time.March, local.Month())
	require.Equal(t, Portal(), local.Location())
	require.Equal(t, naive.Add(-7*time.Hour).Unix(), local.Unix())
}

func TestFixedTime(t *testing.T) {
	at := time.Date(2024, time.May, 2, 8, 30, 0, 0, Portal())
	var api TimeAPI = FixedTime{At: at}
	require.Equal(t, at, api.Now())
}
