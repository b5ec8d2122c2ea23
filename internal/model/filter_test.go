package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleCache() []Transaction {
	return []Transaction{
		{ID: 1, Title: "Lunch", Type: TypeExpense, Category: "food", Amount: decimal.NewFromInt(10)},
		{ID: 2, Title: "Paycheck", Type: TypeIncome, Category: "salary", Amount: decimal.NewFromInt(500)},
	}
}

func ids(txns []Transaction) []int64 {
	out := make([]int64, 0, len(txns))
	for _, t := range txns {
		out = append(out, t.ID)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{
			name:   "expense only",
			filter: Filter{Type: "expense", Category: FilterAll},
			want:   []int64{1},
		},
		{
			name:   "category food",
			filter: Filter{Type: FilterAll, Category: "food"},
			want:   []int64{1},
		},
		{
			name:   "everything in original order",
			filter: NoFilter(),
			want:   []int64{1, 2},
		},
		{
			name:   "empty fields act as all",
			filter: Filter{},
			want:   []int64{1, 2},
		},
		{
			name:   "income with mismatching category",
			filter: Filter{Type: "income", Category: "food"},
			want:   []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(sampleCache())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_ApplyPreservesRelativeOrder(t *testing.T) {
	var cache []Transaction
	for i := int64(1); i <= 20; i++ {
		typ := TypeExpense
		if i%3 == 0 {
			typ = TypeIncome
		}
		cache = append(cache, Transaction{ID: i, Type: typ, Category: "misc"})
	}

	got := Filter{Type: "income", Category: FilterAll}.Apply(cache)

	assert.Equal(t, []int64{3, 6, 9, 12, 15, 18}, ids(got))
	assert.Len(t, cache, 20, "input must not be modified")
}

func TestFilter_IsActive(t *testing.T) {
	assert.False(t, NoFilter().IsActive())
	assert.False(t, Filter{}.IsActive())
	assert.True(t, Filter{Type: "income"}.IsActive())
	assert.True(t, Filter{Type: FilterAll, Category: "rent"}.IsActive())
}

func TestCategories(t *testing.T) {
	txns := []Transaction{
		{Category: "food"},
		{Category: "rent"},
		{Category: "food"},
		{Category: ""},
		{Category: "salary"},
	}
	assert.Equal(t, []string{"food", "rent", "salary"}, Categories(txns))
	assert.Nil(t, Categories(nil))
}
