package domain

import "math"

// Price is the money breakdown of a booking, computed once at creation
type Price struct {
	BaseTotal  float64
	ServiceFee float64
	Taxes      float64
	TotalPrice float64
}

// CalculatePrice derives the booking price from the per-guest price and guest count
func CalculatePrice(pricePerGuest float64, guestCount int) Price {
	baseTotal := pricePerGuest * float64(guestCount)
	serviceFee := Round2(baseTotal * ServiceFeeRate)
	taxes := Round2(baseTotal * TaxRate)

	return Price{
		BaseTotal:  baseTotal,
		ServiceFee: serviceFee,
		Taxes:      taxes,
		TotalPrice: Round2(baseTotal + serviceFee + taxes),
	}
}

// Round2 rounds a money amount to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
