package display

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatQuantityKg(t *testing.T) {
	require.Equal(t, "1 kg", FormatQuantity(1.0, "kg"))
	require.Equal(t, "750g", FormatQuantity(0.75, "kg"))
	require.Equal(t, "500g", FormatQuantity(0.5, "kg"))
	require.Equal(t, "250g", FormatQuantity(0.25, "kg"))
	require.Equal(t, "100g", FormatQuantity(0.1, "kg"))
	require.Equal(t, "3 kg", FormatQuantity(3.0, "kg"))
	require.Equal(t, "300g", FormatQuantity(0.3, "kg"))
	require.Equal(t, "1500g", FormatQuantity(1.5, "kg"))
}

func TestFormatQuantityCount(t *testing.T) {
	require.Equal(t, "3", FormatQuantity(3, "quantity"))
	require.Equal(t, "2.5", FormatQuantity(2.5, "quantity"))
	require.Equal(t, "12", FormatQuantity(12, "dozen"))
	require.Equal(t, "1", FormatQuantity(1, "litre"))
}
