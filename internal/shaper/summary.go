package shaper

import (
	"fmt"
	"sort"
)

const (
	// NotAvailable is shown for any missing summary field.
	NotAvailable = "N/A"
	// UnnamedAssistant is shown when an assistant has no name.
	UnnamedAssistant = "Unnamed Assistant"
)

// Summary is a flat, display-ready projection of an assistant record.
type Summary struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Created       string `json:"created" yaml:"created"`
	Updated       string `json:"updated" yaml:"updated"`
	FirstMessage  string `json:"firstMessage" yaml:"firstMessage"`
	VoiceProvider string `json:"voiceProvider" yaml:"voiceProvider"`
	ModelProvider string `json:"modelProvider" yaml:"modelProvider"`
	ModelName     string `json:"modelName" yaml:"modelName"`
}

// Summarize projects a raw assistant record into a Summary.
func Summarize(assistant map[string]any) Summary {
	voice, _ := assistant["voice"].(map[string]any)
	model, _ := assistant["model"].(map[string]any)

	return Summary{
		ID:            field(assistant, "id", NotAvailable),
		Name:          field(assistant, "name", UnnamedAssistant),
		Created:       timestamp(assistant, "createdAt"),
		Updated:       timestamp(assistant, "updatedAt"),
		FirstMessage:  field(assistant, "firstMessage", NotAvailable),
		VoiceProvider: field(voice, "provider", NotAvailable),
		ModelProvider: field(model, "provider", NotAvailable),
		ModelName:     field(model, "model", NotAvailable),
	}
}

func field(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func timestamp(m map[string]any, key string) string {
	s := field(m, key, "")
	if s == "" {
		return NotAvailable
	}
	return FormatTimestamp(s)
}

// RecentlyUpdated returns up to n records ordered by updatedAt, newest first.
// Records without updatedAt sort last. The input is not reordered.
func RecentlyUpdated(records []map[string]any, n int) []map[string]any {
	sorted := make([]map[string]any, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return field(sorted[i], "updatedAt", "") > field(sorted[j], "updatedAt", "")
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
