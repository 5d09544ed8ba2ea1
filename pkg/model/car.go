package model

import "time"

// Car classes offered by the fleet.
const (
	ClassEconomy  = "economy"
	ClassStandard = "standard"
	ClassPremium  = "premium"
)

var ValidCarClasses = []string{ClassEconomy, ClassStandard, ClassPremium}

var ValidFuelTypes = []string{"petrol", "diesel", "hybrid", "electric", "lpg"}

var ValidTransmissions = []string{"manual", "automatic", "cvt", "semi-automatic"}

type Car struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Brand         string    `json:"brand" bson:"brand" validate:"required,min=1,max=50"`
	Model         string    `json:"model" bson:"model" validate:"required,min=1,max=50"`
	Year          int       `json:"year" bson:"year" validate:"required,min=1900,max=2100"`
	Class         string    `json:"class" bson:"class" validate:"required,oneof=economy standard premium"`
	PricePerDay   float64   `json:"price_per_day" bson:"price_per_day" validate:"required,gt=0"`
	DepositAmount float64   `json:"deposit_amount" bson:"deposit_amount" validate:"gte=0"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	FuelType      string    `json:"fuel_type,omitempty" bson:"fuel_type,omitempty" validate:"omitempty,oneof=petrol diesel hybrid electric lpg"`
	Transmission  string    `json:"transmission,omitempty" bson:"transmission,omitempty" validate:"omitempty,oneof=manual automatic cvt semi-automatic"`
	Seats         int       `json:"seats,omitempty" bson:"seats,omitempty" validate:"omitempty,min=1,max=9"`
	Features      []string  `json:"features,omitempty" bson:"features,omitempty"`
	ImageURLs     []string  `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// CarUpdate carries the admin-editable subset of car fields. Pointer fields
// distinguish "not sent" from zero values.
type CarUpdate struct {
	Brand         string    `json:"brand,omitempty" validate:"omitempty,min=1,max=50"`
	Model         string    `json:"model,omitempty" validate:"omitempty,min=1,max=50"`
	Year          *int      `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Class         string    `json:"class,omitempty" validate:"omitempty,oneof=economy standard premium"`
	PricePerDay   *float64  `json:"price_per_day,omitempty" validate:"omitempty,gt=0"`
	DepositAmount *float64  `json:"deposit_amount,omitempty" validate:"omitempty,gte=0"`
	IsActive      *bool     `json:"is_active,omitempty"`
	FuelType      string    `json:"fuel_type,omitempty" validate:"omitempty,oneof=petrol diesel hybrid electric lpg"`
	Transmission  string    `json:"transmission,omitempty" validate:"omitempty,oneof=manual automatic cvt semi-automatic"`
	Seats         *int      `json:"seats,omitempty" validate:"omitempty,min=1,max=9"`
	Features      *[]string `json:"features,omitempty"`
	ImageURLs     *[]string `json:"image_urls,omitempty"`
}

// CarStatistics summarizes fleet counts for the admin overview.
type CarStatistics struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
