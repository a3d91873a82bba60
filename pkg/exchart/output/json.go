// Package output serializes inspection results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/exchart-go/pkg/exchart/models"
)

// ToJSON serializes a chart summary.
func ToJSON(summary *models.ChartSummary, pretty bool) ([]byte, error) {
	return marshal(summary, pretty)
}

// DataToJSON serializes a dataset in the render input format.
func DataToJSON(data *models.ChartRenderData, pretty bool) ([]byte, error) {
	return marshal(data, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
