package types

// BookingRequest is accepted as JSON or as form fields. Email is the
// confirmation recipient; when empty no mail is sent.
type BookingRequest struct {
	ServiceCenter string  `json:"service_center"`
	ServiceDate   string  `json:"service_date"`
	ServiceTime   string  `json:"service_time"`
	Cost          float64 `json:"cost"`
	Email         string  `json:"email"`
}

type BookingForm struct {
	VIN          string  `json:"vin"`
	CostEstimate float64 `json:"cost_estimate"`
}
