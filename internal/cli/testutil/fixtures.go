package testutil

// SampleAssistant returns a fully populated assistant record.
func SampleAssistant(id, name, updatedAt string) map[string]any {
	return map[string]any{
		"id":                 id,
		"name":               name,
		"firstMessage":       "Hello! How can I help you today?",
		"firstMessageMode":   "assistant-speaks-first",
		"maxDurationSeconds": float64(600),
		"backgroundSound":    "off",
		"voice": map[string]any{
			"provider": "elevenlabs",
			"voiceId":  "21m00Tcm4TlvDq8ikWAM",
		},
		"model": map[string]any{
			"provider":    "openai",
			"model":       "gpt-4",
			"temperature": 0.7,
			"maxTokens":   float64(1000),
			"messages": []any{
				map[string]any{"role": "system", "content": "You are a **friendly** support agent."},
			},
		},
		"createdAt": "2024-01-15T10:30:00.000Z",
		"updatedAt": updatedAt,
	}
}

// SampleCall returns a call record for assistantID.
func SampleCall(id, assistantID, status string) map[string]any {
	return map[string]any{
		"id":          id,
		"assistantId": assistantID,
		"status":      status,
		"type":        "outboundPhoneCall",
		"createdAt":   "2024-02-01T09:00:00Z",
	}
}
