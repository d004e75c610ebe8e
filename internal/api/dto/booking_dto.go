package dto

// CreateBookingRequest payload.
type CreateBookingRequest struct {
	ServiceID   string `json:"service_id"`
	BookingDate string `json:"booking_date"`
}

// UpdateBookingRequest payload. Only the date is customer-mutable.
type UpdateBookingRequest struct {
	BookingDate string `json:"booking_date"`
}

// CustomerSummary is the account block embedded in a booking response.
type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ServiceSummary is the service block embedded in a booking response.
type ServiceSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Price  string `json:"price"`
	Status string `json:"status"`
}

// BookingResponse is the public shape of a booking. TotalAmount reflects the
// service's current price at read time.
type BookingResponse struct {
	ID          string          `json:"id"`
	BookingDate string          `json:"booking_date"`
	Status      string          `json:"status"`
	TotalAmount string          `json:"total_amount"`
	CreatedAt   string          `json:"created_at"`
	Customer    CustomerSummary `json:"customer"`
	Service     ServiceSummary  `json:"service"`
}

// PaginationMeta reports the shape of one admin listing page.
type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}
