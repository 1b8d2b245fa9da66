package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCost_FlatSchedule(t *testing.T) {
	cost := DefaultFeeSchedule().Cost()

	assert.Equal(t, int64(500), cost.ConsultationFee)
	assert.Equal(t, int64(50), cost.BookingFee)
	assert.Equal(t, int64(550), cost.Total)
	assert.Equal(t, "PHP", cost.Currency)
}

func TestCost_CustomSchedule(t *testing.T) {
	fees := FeeSchedule{ConsultationFee: 700, BookingFee: 100, Currency: "PHP"}

	cost := fees.Cost()
	assert.Equal(t, int64(800), cost.Total)
}
