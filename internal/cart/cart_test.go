package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"digimart/internal/model"
)

func sampleProducts() (model.Product, model.Product) {
	a := model.Product{ID: uuid.New(), Name: "A", Price: decimal.NewFromInt(500)}
	b := model.Product{ID: uuid.New(), Name: "B", Price: decimal.NewFromInt(300), Discount: 10}
	return a, b
}

func TestCart_TotalAndCount(t *testing.T) {
	a, b := sampleProducts()

	c := New()
	c.Add(a)
	c.Add(b)

	// 500 + round(300 * 0.9) = 770
	assert.True(t, c.Total().Equal(decimal.NewFromInt(770)), "got %s", c.Total())
	assert.Equal(t, 2, c.Count())
}

func TestCart_AddBumpsQuantity(t *testing.T) {
	a, _ := sampleProducts()

	c := New()
	c.Add(a)
	c.Add(a)

	assert.Equal(t, 1, c.Count())
	lines := c.Lines()
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(1000)))
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	a, b := sampleProducts()

	c := New()
	c.Add(a)
	c.Add(b)
	c.SetQuantity(a.ID, 0)

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, []uuid.UUID{b.ID}, c.ProductIDs())
	assert.True(t, c.Total().Equal(decimal.NewFromInt(270)))
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	a, b := sampleProducts()

	c := New()
	c.Add(b)
	c.Add(a)

	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, c.ProductIDs())

	c.Remove(b.ID)
	c.Add(b)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, c.ProductIDs())
}

func TestCart_SnapshotIgnoresLaterEdits(t *testing.T) {
	a, _ := sampleProducts()

	c := New()
	c.Add(a)

	a.Price = decimal.NewFromInt(9999)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(500)))
}
