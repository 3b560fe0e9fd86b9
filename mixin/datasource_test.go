package mixin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataSource_ZeroValueIsMC(t *testing.T) {
	var d DataSource

	require.True(t, d.IsMC())
	require.False(t, d.IsData())
	require.Equal(t, "mc", d.Source())
}

func TestDataSource_Toggle(t *testing.T) {
	d := NewDataSource(true)
	require.True(t, d.IsData())
	require.Equal(t, "data", d.Source())

	d.SetIsMC()
	require.True(t, d.IsMC())

	d.SetIsData()
	require.True(t, d.IsData())
}
