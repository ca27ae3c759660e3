package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// unmarshalLoose decodes model output that should be a JSON object but
// may arrive wrapped in prose or fences. Strict decoding is tried first,
// then the outermost {...} span is salvaged.
func unmarshalLoose(text string, out any) error {
	if err := json.Unmarshal([]byte(text), out); err == nil {
		return nil
	}

	m := jsonObjectRe.FindString(text)
	if m == "" {
		return fmt.Errorf("no JSON object in model output")
	}

	if err := json.Unmarshal([]byte(m), out); err != nil {
		return fmt.Errorf("salvaged JSON invalid: %w", err)
	}

	return nil
}
