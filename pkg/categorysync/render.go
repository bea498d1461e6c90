package categorysync

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/operator-framework/ou-cost-category/pkg/costcategory"
)

// RenderPlan writes the request planned for plan to w as YAML (the default)
// or JSON.
func RenderPlan(w io.Writer, plan *costcategory.Plan, format string) error {
	var (
		data []byte
		err  error
	)
	payload := plan.Payload()
	switch format {
	case "", OutputYAML:
		data, err = yaml.Marshal(payload)
	case OutputJSON:
		data, err = json.MarshalIndent(payload, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("invalid output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("unable to render cost category payload: %w", err)
	}
	_, err = w.Write(data)
	return err
}
