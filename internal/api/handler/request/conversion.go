package request

type CreateConversion struct {
	Name     string `json:"name" validate:"required"`
	Document string `json:"document" validate:"required"` // workflow XML
}
