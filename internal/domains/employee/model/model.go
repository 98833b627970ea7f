package model

const (
	TableName  = "employees"
	EntityName = "employee"

	FieldID         = "id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldDepartment = "department"
)

type Employee struct {
	ID         string `db:"id"         bson:"_id"        json:"id"`
	Name       string `db:"name"       bson:"name"       json:"name"`
	Email      string `db:"email"      bson:"email"      json:"email"`
	Department string `db:"department" bson:"department" json:"department"`
}
