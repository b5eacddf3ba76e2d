package loam

// PartMetadata is the header of a part document. The assembly sections are
// kept loosely typed here and decoded strictly by the description decoder.
type PartMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Robot       string `json:"robot" mapstructure:"robot"`
	Description string `json:"description" mapstructure:"description"`

	Materials     []any `json:"materials" mapstructure:"materials"`
	Links         []any `json:"links" mapstructure:"links"`
	Joints        []any `json:"joints" mapstructure:"joints"`
	Transmissions []any `json:"transmissions" mapstructure:"transmissions"`
	Operations    []any `json:"operations" mapstructure:"operations"`
}

// raw rebuilds the document the description decoder expects.
func (m PartMetadata) raw(id string) map[string]any {
	out := map[string]any{"robot": m.Robot}
	if m.Robot == "" {
		out["robot"] = id
	}
	sections := map[string][]any{
		"materials":     m.Materials,
		"links":         m.Links,
		"joints":        m.Joints,
		"transmissions": m.Transmissions,
		"operations":    m.Operations,
	}
	for k, v := range sections {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
