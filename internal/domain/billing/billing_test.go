package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validItem() Item {
	return Item{
		ClientID:    "c1",
		Amount:      decimal.RequireFromString("89.90"),
		Description: "Colar prata",
	}
}

func TestNormalizeDefaults(t *testing.T) {
	it := validItem()
	it.Normalize()

	assert.Equal(t, DefaultDaysToSend, it.DaysToSend)
	assert.Equal(t, DefaultMessage, it.Message)
	assert.NoError(t, it.Validate())
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Item)
		want   error
	}{
		"sem cliente":     {func(i *Item) { i.ClientID = "" }, ErrClientRequired},
		"valor zero":      {func(i *Item) { i.Amount = decimal.Zero }, ErrInvalidAmount},
		"valor negativo":  {func(i *Item) { i.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
		"sem descrição":   {func(i *Item) { i.Description = "  " }, ErrDescriptionMissing},
		"prazo fora":      {func(i *Item) { i.DaysToSend = 10 }, ErrInvalidDays},
		"prazo permitido": {func(i *Item) { i.DaysToSend = 30 }, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			it := validItem()
			it.DaysToSend = DefaultDaysToSend
			tc.mutate(&it)
			err := it.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDue(t *testing.T) {
	created := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	it := validItem()
	it.CreatedAt = created
	it.DaysToSend = 3

	assert.False(t, it.Due(created.AddDate(0, 0, 2)))
	assert.True(t, it.Due(created.AddDate(0, 0, 3)))

	sent := created.AddDate(0, 0, 3)
	it.SentAt = &sent
	assert.False(t, it.Due(created.AddDate(0, 0, 10)))
}
