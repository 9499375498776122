package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddNewLine(t *testing.T) {
	snap := Snapshot{Price: 120, Name: "Fresh Apples", ImagePath: "uploads/products/apples.svg", UnitType: "kg", Available: 40}

	c, err := Cart{}.Add(1, 2.5, snap)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	require.Equal(t, uint(1), c.Lines[0].ProductID)
	require.Equal(t, 2.5, c.Lines[0].Quantity)
	require.Equal(t, float64(120), c.Lines[0].Price)
	require.Equal(t, "kg", c.Lines[0].UnitType)
	require.Equal(t, float64(300), c.Lines[0].Subtotal())
}

func TestAddMergesExistingLine(t *testing.T) {
	snap := Snapshot{Price: 45, Name: "Whole Wheat Bread", UnitType: "quantity", Available: 5}

	c, err := Cart{}.Add(3, 2, snap)
	require.NoError(t, err)
	c, err = c.Add(3, 2, snap)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	require.Equal(t, float64(4), c.Lines[0].Quantity)

	// Merged quantity would hit 6 against stock of 5.
	_, err = c.Add(3, 2, snap)
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddRejectsOverStock(t *testing.T) {
	snap := Snapshot{Price: 70, Name: "Brown Eggs", UnitType: "quantity", Available: 3}

	c, err := Cart{}.Add(5, 4, snap)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.True(t, c.IsEmpty())
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	snap := Snapshot{Price: 55, Name: "Fresh Milk", UnitType: "litre", Available: 50}

	c, err := Cart{}.Add(4, 0, snap)
	require.NoError(t, err)
	require.Equal(t, float64(1), c.Lines[0].Quantity)
}

func TestUpdateReplacesQuantity(t *testing.T) {
	snap := Snapshot{Price: 60, Name: "Organic Bananas", UnitType: "dozen", Available: 35}

	c, err := Cart{}.Add(2, 3, snap)
	require.NoError(t, err)

	c, err = c.Update(2, 10, 35)
	require.NoError(t, err)
	require.Equal(t, float64(10), c.Lines[0].Quantity)

	_, err = c.Update(2, 36, 35)
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestUpdateRejectsNegativeQuantity(t *testing.T) {
	snap := Snapshot{Price: 60, Name: "Organic Bananas", UnitType: "dozen", Available: 35}

	c, err := Cart{}.Add(2, 3, snap)
	require.NoError(t, err)

	// A negative quantity must never reach checkout, where it would
	// increment stock instead of decrementing it.
	got, err := c.Update(2, -4, 35)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	require.Equal(t, float64(3), got.Lines[0].Quantity)
}

func TestUpdateZeroRemovesLine(t *testing.T) {
	snap := Snapshot{Price: 60, Name: "Organic Bananas", UnitType: "dozen", Available: 35}

	c, err := Cart{}.Add(2, 3, snap)
	require.NoError(t, err)

	c, err = c.Update(2, 0, 35)
	require.NoError(t, err)
	require.True(t, c.IsEmpty())
}

func TestRemoveIsIdempotent(t *testing.T) {
	snap := Snapshot{Price: 60, Name: "Organic Bananas", UnitType: "dozen", Available: 35}

	c, err := Cart{}.Add(2, 3, snap)
	require.NoError(t, err)

	c = c.Remove(2)
	require.True(t, c.IsEmpty())

	// Second removal of an absent product must not blow up.
	c = c.Remove(2)
	require.True(t, c.IsEmpty())
	c = c.Remove(99)
	require.True(t, c.IsEmpty())
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	snap := Snapshot{Price: 10, Name: "Test", UnitType: "quantity", Available: 100}

	base, err := Cart{}.Add(1, 1, snap)
	require.NoError(t, err)

	_, err = base.Add(1, 5, snap)
	require.NoError(t, err)
	require.Equal(t, float64(1), base.Lines[0].Quantity)

	_, err = base.Update(1, 7, 100)
	require.NoError(t, err)
	require.Equal(t, float64(1), base.Lines[0].Quantity)

	_ = base.Remove(1)
	require.Len(t, base.Lines, 1)
}

func TestCount(t *testing.T) {
	snap := Snapshot{Price: 10, Name: "Test", UnitType: "quantity", Available: 100}

	c := Cart{}
	require.Equal(t, 0, c.Count())

	c, _ = c.Add(1, 2, snap)
	c, _ = c.Add(2, 2, snap)
	c, _ = c.Add(1, 2, snap) // merge, not a new line
	require.Equal(t, 2, c.Count())
}
