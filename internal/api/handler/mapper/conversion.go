package mapper

import (
	"encoding/json"

	"converter/internal/api/handler/response"
	"converter/internal/api/models"
)

// ToConversionResponse converts a stored conversion to its listing response.
func ToConversionResponse(c models.Conversion) response.Conversion {
	return response.Conversion{
		ID:              c.PublicID,
		Name:            c.Name,
		Checksum:        c.Checksum,
		NodeCount:       c.NodeCount,
		ConnectionCount: c.ConnectionCount,
		Version:         c.Version,
		Author:          c.Author,
		Description:     c.Description,
		CycleWarning:    c.CycleWarning,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToConversionResponses converts a slice of conversions for listing.
func ToConversionResponses(entities []models.Conversion) []response.Conversion {
	conversions := make([]response.Conversion, len(entities))
	for i, c := range entities {
		conversions[i] = ToConversionResponse(c)
	}
	return conversions
}

// ToConversionDetail converts a conversion including its analysis summary.
func ToConversionDetail(c models.Conversion) response.ConversionDetail {
	detail := response.ConversionDetail{Conversion: ToConversionResponse(c)}
	if len(c.Summary) > 0 {
		detail.Summary = json.RawMessage(c.Summary)
	}
	return detail
}
