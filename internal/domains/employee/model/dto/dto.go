package dto

import "staffdir/internal/domains/employee/model"

type EmployeeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (e *EmployeeResponse) FromModel(model model.Employee) {
	e.ID = model.ID
	e.Name = model.Name
	e.Email = model.Email
	e.Department = model.Department
}
