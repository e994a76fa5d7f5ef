package shaper

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Voice is the typed view of an assistant's voice configuration.
type Voice struct {
	Provider  string         `mapstructure:"provider" json:"provider,omitempty" yaml:"provider,omitempty"`
	VoiceID   string         `mapstructure:"voiceId" json:"voiceId,omitempty" yaml:"voiceId,omitempty"`
	Speed     float64        `mapstructure:"speed" json:"speed,omitempty" yaml:"speed,omitempty"`
	Stability float64        `mapstructure:"stability" json:"stability,omitempty" yaml:"stability,omitempty"`
	Extra     map[string]any `mapstructure:",remain" json:"-" yaml:"-"`
}

// Message is one entry of a model's prompt messages.
type Message struct {
	Role    string `mapstructure:"role" json:"role" yaml:"role"`
	Content string `mapstructure:"content" json:"content" yaml:"content"`
}

// Model is the typed view of an assistant's language-model configuration.
type Model struct {
	Provider    string         `mapstructure:"provider" json:"provider,omitempty" yaml:"provider,omitempty"`
	Model       string         `mapstructure:"model" json:"model,omitempty" yaml:"model,omitempty"`
	Temperature float64        `mapstructure:"temperature" json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int            `mapstructure:"maxTokens" json:"maxTokens,omitempty" yaml:"maxTokens,omitempty"`
	Messages    []Message      `mapstructure:"messages" json:"messages,omitempty" yaml:"messages,omitempty"`
	Extra       map[string]any `mapstructure:",remain" json:"-" yaml:"-"`
}

// Assistant is the typed view of an assistant record. Fields the API adds
// that are not modelled here are kept in Extra.
type Assistant struct {
	ID                 string         `mapstructure:"id"`
	Name               string         `mapstructure:"name"`
	FirstMessage       string         `mapstructure:"firstMessage"`
	FirstMessageMode   string         `mapstructure:"firstMessageMode"`
	MaxDurationSeconds int            `mapstructure:"maxDurationSeconds"`
	BackgroundSound    string         `mapstructure:"backgroundSound"`
	EndCallMessage     string         `mapstructure:"endCallMessage"`
	VoicemailMessage   string         `mapstructure:"voicemailMessage"`
	EndCallPhrases     []string       `mapstructure:"endCallPhrases"`
	Voice              *Voice         `mapstructure:"voice"`
	Model              *Model         `mapstructure:"model"`
	CreatedAt          string         `mapstructure:"createdAt"`
	UpdatedAt          string         `mapstructure:"updatedAt"`
	Extra              map[string]any `mapstructure:",remain"`
}

// DecodeAssistant converts a raw record into its typed view.
func DecodeAssistant(raw map[string]any) (*Assistant, error) {
	var a Assistant
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &a,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode assistant: %w", err)
	}
	return &a, nil
}

// SystemMessage returns the content of the first system message, if any.
func (a *Assistant) SystemMessage() string {
	if a.Model == nil {
		return ""
	}
	for _, m := range a.Model.Messages {
		if m.Role == "system" {
			return m.Content
		}
	}
	return ""
}
