package model

import "time"

// Booking statuses. A booking in a holding status blocks the car's dates.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusDeleted   = "deleted"
)

const (
	DepositPending  = "pending"
	DepositPaid     = "paid"
	DepositRefunded = "refunded"
)

var ValidBookingStatuses = []string{
	StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusDeleted,
}

var ValidDepositStatuses = []string{DepositPending, DepositPaid, DepositRefunded}

// HoldingStatuses are the statuses that count toward availability conflicts.
var HoldingStatuses = []string{StatusPending, StatusConfirmed}

func IsHoldingStatus(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// Booking reserves one car for the half-open date range [StartDate, EndDate):
// the end date itself is not an occupied night, so back-to-back bookings on a
// shared boundary date do not conflict.
type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Reference       string    `json:"reference" bson:"reference"`
	CarID           string    `json:"car_id" bson:"car_id" validate:"required,mongodb"`
	StartDate       time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" bson:"end_date" validate:"required,gtfield=StartDate"`
	Status          string    `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed cancelled completed deleted"`
	DepositStatus   string    `json:"deposit_status" bson:"deposit_status" validate:"omitempty,oneof=pending paid refunded"`
	TotalPrice      float64   `json:"total_price" bson:"total_price"`
	RentalDays      int       `json:"rental_days" bson:"rental_days"`
	DepositAmount   float64   `json:"deposit_amount" bson:"deposit_amount"`
	ClientFirstName string    `json:"client_first_name" bson:"client_first_name" validate:"required,min=2,max=50"`
	ClientLastName  string    `json:"client_last_name" bson:"client_last_name" validate:"required,min=2,max=50"`
	ClientEmail     string    `json:"client_email" bson:"client_email" validate:"required,email"`
	ClientPhone     string    `json:"client_phone" bson:"client_phone" validate:"required"`
	PaymentMethod   string    `json:"payment_method,omitempty" bson:"payment_method,omitempty" validate:"omitempty,oneof=vpos cash"`
	IPAddress       string    `json:"-" bson:"ip_address,omitempty"`
	Notes           string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// BookingUpdate is the admin mutation contract: only status, deposit status
// and notes may change after creation. Everything else is immutable history.
type BookingUpdate struct {
	Status        string  `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed deleted"`
	DepositStatus string  `json:"deposit_status,omitempty" validate:"omitempty,oneof=pending paid refunded"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (u *BookingUpdate) IsEmpty() bool {
	return u.Status == "" && u.DepositStatus == "" && u.Notes == nil
}

// BookingFilter narrows admin booking listings.
type BookingFilter struct {
	Status    string
	CarID     string
	StartDate *time.Time
	EndDate   *time.Time
}

// BookingStatistics summarizes bookings for the admin overview. Revenue only
// counts confirmed bookings.
type BookingStatistics struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Confirmed    int     `json:"confirmed"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"total_revenue"`
}
