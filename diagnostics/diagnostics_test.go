package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAssignsCorrelationID(t *testing.T) {
	d := New(nil)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", d.CorrelationID.String())
}

func TestNoopDoesNotPanic(t *testing.T) {
	d := Noop()
	require.NotPanics(t, func() {
		d.Warning("test warning", "k", "v")
		d.Error("test error")
	})
}
