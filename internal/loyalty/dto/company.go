package dto

import "time"

type CreateCompanyInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Pin  string `json:"pin"`
}

type CompanyOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
