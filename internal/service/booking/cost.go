package booking

import (
	"github.com/igabay/booking-api/internal/model"
)

// FeeSchedule holds the flat booking fees. Selected services do not affect
// the price; the charge is the same flat total for every appointment.
type FeeSchedule struct {
	ConsultationFee int64
	BookingFee      int64
	Currency        string
}

func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		ConsultationFee: 500,
		BookingFee:      50,
		Currency:        "PHP",
	}
}

// Cost composes the appointment cost from the flat schedule
func (f FeeSchedule) Cost() model.AppointmentCost {
	return model.AppointmentCost{
		ConsultationFee: f.ConsultationFee,
		BookingFee:      f.BookingFee,
		Total:           f.ConsultationFee + f.BookingFee,
		Currency:        f.Currency,
	}
}
