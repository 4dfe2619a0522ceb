package render

import (
	"encoding/json"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/view"
)

// JSON serializes the view graph for API consumers. Output is deterministic
// for identical views: nodes and edges keep their sorted order and struct
// fields marshal in declaration order.
func JSON(v *view.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize view")
	}
	return data, nil
}
