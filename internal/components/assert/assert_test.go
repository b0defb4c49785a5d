package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct{}

func TestNotNil(t *testing.T) {
	var typed *recorder
	var iface any = typed

	require.PanicsWithValue(t, "expected tel to be not nil", func() { NotNil("tel", nil) })
	require.Panics(t, func() { NotNil("tel", iface) })
	require.NotPanics(t, func() { NotNil("tel", &recorder{}) })
	require.NotPanics(t, func() { NotNil("tel", recorder{}) })
}

func TestNotEmpty(t *testing.T) {
	require.Panics(t, func() { NotEmpty("base url", "") })
	require.NotPanics(t, func() { NotEmpty("base url", "https://spot.unri.ac.id") })
}
