package domain

type VehicleSpecs struct {
	Seats   int    `json:"seats"`
	Fuel    string `json:"fuel"`
	Mileage string `json:"mileage"`
}

type Vehicle struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Image        string       `json:"image"`
	PricePerHour int64        `json:"pricePerHour"`
	Cities       []string     `json:"cities"`
	Specs        VehicleSpecs `json:"specs"`
	Type         string       `json:"type"`
}
