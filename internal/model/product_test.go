package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_EffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount int
		expected int64
	}{
		{name: "20 percent off", price: 1000, discount: 20, expected: 800},
		{name: "no discount", price: 1000, discount: 0, expected: 1000},
		{name: "10 percent off rounds", price: 300, discount: 10, expected: 270},
		{name: "full discount", price: 500, discount: 100, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: decimal.NewFromInt(tt.price), Discount: tt.discount}
			assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(tt.expected)),
				"got %s", p.EffectivePrice())
		})
	}
}
