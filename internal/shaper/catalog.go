package shaper

// VoiceProvider describes a selectable voice provider.
type VoiceProvider struct {
	Key         string
	Name        string
	Description string
}

// ModelProvider describes a selectable model provider and its models.
type ModelProvider struct {
	Key         string
	Name        string
	Description string
	Models      []string
}

var VoiceProviders = []VoiceProvider{
	{Key: "elevenlabs", Name: "ElevenLabs", Description: "High-quality AI voices with emotional range"},
	{Key: "openai", Name: "OpenAI", Description: "OpenAI's text-to-speech models"},
	{Key: "azure", Name: "Azure Cognitive Services", Description: "Microsoft's speech synthesis service"},
	{Key: "playht", Name: "PlayHT", Description: "AI voice generation platform"},
}

var ModelProviders = []ModelProvider{
	{Key: "openai", Name: "OpenAI", Description: "OpenAI's language models", Models: []string{"gpt-4", "gpt-4-turbo", "gpt-3.5-turbo"}},
	{Key: "anthropic", Name: "Anthropic", Description: "Anthropic's Claude models", Models: []string{"claude-3-opus", "claude-3-sonnet", "claude-3-haiku"}},
	{Key: "google", Name: "Google", Description: "Google's Gemini models", Models: []string{"gemini-pro", "gemini-pro-vision"}},
	{Key: "azure", Name: "Azure OpenAI", Description: "Azure-hosted OpenAI models", Models: []string{"gpt-4", "gpt-35-turbo"}},
}

var FirstMessageModes = []string{
	"assistant-speaks-first",
	"assistant-waits-for-user",
	"assistant-speaks-first-with-model-generated-message",
}

var BackgroundSounds = []string{"off", "office", "nature", "cafe"}

const DefaultSystemMessage = "You are a helpful AI assistant. Be friendly, concise, and helpful in your responses."

// FindModelProvider looks up a model provider by key.
func FindModelProvider(key string) (ModelProvider, bool) {
	for _, p := range ModelProviders {
		if p.Key == key {
			return p, true
		}
	}
	return ModelProvider{}, false
}

// DefaultTemplate returns a fresh copy of the new-assistant template.
func DefaultTemplate() map[string]any {
	return map[string]any{
		"name":               "New Assistant",
		"firstMessage":       "Hello! How can I help you today?",
		"firstMessageMode":   "assistant-speaks-first",
		"maxDurationSeconds": 600,
		"voice": map[string]any{
			"provider":  "elevenlabs",
			"speed":     1.0,
			"stability": 0.5,
		},
		"model": map[string]any{
			"provider":    "openai",
			"model":       "gpt-3.5-turbo",
			"temperature": 0.7,
			"maxTokens":   1000,
			"messages": []any{
				map[string]any{"role": "system", "content": DefaultSystemMessage},
			},
		},
		"backgroundSound": "off",
	}
}
