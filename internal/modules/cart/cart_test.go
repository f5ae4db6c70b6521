package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headphones() ProductSnapshot {
	return ProductSnapshot{ID: 1, Name: "Headphones", Price: decimal.NewFromInt(2499), Stock: 5}
}

func TestAdd_SameProductTwiceMergesIntoOneItem(t *testing.T) {
	c := New()
	c.Add(headphones())
	c.Add(headphones())

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 2, c.Count())
}

func TestAdd_CopiesSnapshotFields(t *testing.T) {
	c := New()
	p := headphones()
	c.Add(p)

	// a later catalog change must not leak into the cart
	p.Name = "Renamed"
	p.Price = decimal.NewFromInt(1)
	c.Add(p)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "Headphones", c.Items[0].Name)
	assert.True(t, c.Items[0].Price.Equal(decimal.NewFromInt(2499)))
	assert.Equal(t, 5, c.Items[0].Stock)
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(ProductSnapshot{ID: 3, Name: "c", Price: decimal.NewFromInt(1)})
	c.Add(ProductSnapshot{ID: 1, Name: "a", Price: decimal.NewFromInt(1)})
	c.Add(ProductSnapshot{ID: 3, Name: "c", Price: decimal.NewFromInt(1)})

	require.Len(t, c.Items, 2)
	assert.Equal(t, int64(3), c.Items[0].ID)
	assert.Equal(t, int64(1), c.Items[1].ID)
}

func TestIncrease(t *testing.T) {
	c := New()
	c.Add(headphones())
	c.Increase(1)
	c.Increase(42) // absent: no-op

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "4998.00", c.Total().StringFixed(2))
}

func TestIncrease_DoesNotCapAtStock(t *testing.T) {
	c := New()
	c.Add(ProductSnapshot{ID: 9, Name: "Last one", Price: decimal.NewFromInt(10), Stock: 1})
	c.Increase(9)
	c.Increase(9)

	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestDecrease_AtOneRemovesItem(t *testing.T) {
	c := New()
	c.Add(headphones())
	c.Decrease(1)

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Total().IsZero())
}

func TestDecrease_AbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(headphones())
	c.Decrease(7)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(headphones())
	c.Add(ProductSnapshot{ID: 2, Name: "Mouse", Price: decimal.NewFromInt(999)})
	c.Increase(1)

	c.Remove(1)

	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(2), c.Items[0].ID)
	assert.False(t, c.Has(1))
}

func TestTotal_DecimalPrices(t *testing.T) {
	c := New()
	c.Add(ProductSnapshot{ID: 1, Name: "a", Price: decimal.RequireFromString("19.99")})
	c.Add(ProductSnapshot{ID: 1, Name: "a", Price: decimal.RequireFromString("19.99")})
	c.Add(ProductSnapshot{ID: 2, Name: "b", Price: decimal.RequireFromString("0.10")})

	assert.Equal(t, "40.08", c.Total().StringFixed(2))
}

func TestNormalize(t *testing.T) {
	c := &Cart{Items: []Item{
		{ID: 1, Name: "a", Price: decimal.NewFromInt(1), Quantity: 2},
		{ID: 0, Name: "bad", Quantity: 1},
		{ID: 2, Name: "b", Price: decimal.NewFromInt(1), Quantity: 0},
		{ID: 1, Name: "a", Price: decimal.NewFromInt(1), Quantity: 1},
	}}
	c.Normalize()

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

// Random operation sequences must never leave an item at quantity <= 0, and
// the derived totals must always match a fresh sum over the items.
func TestOperationSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	products := []ProductSnapshot{
		{ID: 1, Name: "a", Price: decimal.RequireFromString("2499")},
		{ID: 2, Name: "b", Price: decimal.RequireFromString("15.50")},
		{ID: 3, Name: "c", Price: decimal.RequireFromString("0.99")},
	}

	for run := 0; run < 200; run++ {
		c := New()
		for step := 0; step < 50; step++ {
			p := products[rng.Intn(len(products))]
			switch rng.Intn(4) {
			case 0:
				c.Add(p)
			case 1:
				c.Increase(p.ID)
			case 2:
				c.Decrease(p.ID)
			case 3:
				c.Remove(p.ID)
			}

			count := 0
			total := decimal.Zero
			ids := map[int64]bool{}
			for _, it := range c.Items {
				require.GreaterOrEqual(t, it.Quantity, 1)
				require.False(t, ids[it.ID], "duplicate item %d", it.ID)
				ids[it.ID] = true
				count += it.Quantity
				total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			}
			require.Equal(t, count, c.Count())
			require.True(t, total.Equal(c.Total()))
		}
	}
}
