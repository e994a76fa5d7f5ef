package shaper

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AssistantForm holds the editable fields of an assistant as an operator
// fills them in. Payload turns it into a cleaned request body.
type AssistantForm struct {
	Name               string  `json:"name"`
	FirstMessage       string  `json:"firstMessage"`
	FirstMessageMode   string  `json:"firstMessageMode"`
	MaxDurationSeconds int     `json:"maxDurationSeconds"`
	VoiceProvider      string  `json:"voiceProvider"`
	VoiceID            string  `json:"voiceId"`
	VoiceSpeed         float64 `json:"voiceSpeed"`
	VoiceStability     float64 `json:"voiceStability"`
	ModelProvider      string  `json:"modelProvider"`
	ModelName          string  `json:"modelName"`
	Temperature        float64 `json:"temperature"`
	MaxTokens          int     `json:"maxTokens"`
	SystemMessage      string  `json:"systemMessage"`
	BackgroundSound    string  `json:"backgroundSound"`
	EndCallMessage     string  `json:"endCallMessage"`
	VoicemailMessage   string  `json:"voicemailMessage"`
	// EndCallPhrases holds one phrase per line.
	EndCallPhrases string `json:"endCallPhrases"`
}

// NewAssistantForm returns a form with the defaults of a new assistant.
func NewAssistantForm() AssistantForm {
	return AssistantForm{
		FirstMessageMode:   FirstMessageModes[0],
		MaxDurationSeconds: 600,
		VoiceProvider:      VoiceProviders[0].Key,
		VoiceSpeed:         1.0,
		VoiceStability:     0.5,
		ModelProvider:      ModelProviders[0].Key,
		ModelName:          ModelProviders[0].Models[0],
		Temperature:        0.7,
		MaxTokens:          1000,
		SystemMessage:      DefaultSystemMessage,
		BackgroundSound:    BackgroundSounds[0],
	}
}

// FormFromAssistant pre-fills a form from an existing record. Options that
// are not in the known lists fall back to the first known option.
func FormFromAssistant(raw map[string]any) (AssistantForm, error) {
	a, err := DecodeAssistant(raw)
	if err != nil {
		return AssistantForm{}, err
	}

	f := NewAssistantForm()
	f.Name = a.Name
	f.FirstMessage = a.FirstMessage
	f.FirstMessageMode = oneOf(a.FirstMessageMode, FirstMessageModes)
	if a.MaxDurationSeconds != 0 {
		f.MaxDurationSeconds = a.MaxDurationSeconds
	}
	f.BackgroundSound = oneOf(a.BackgroundSound, BackgroundSounds)
	f.EndCallMessage = a.EndCallMessage
	f.VoicemailMessage = a.VoicemailMessage
	f.EndCallPhrases = strings.Join(a.EndCallPhrases, "\n")
	f.SystemMessage = a.SystemMessage()

	if v := a.Voice; v != nil {
		if v.Provider != "" {
			f.VoiceProvider = v.Provider
		}
		f.VoiceID = v.VoiceID
		if v.Speed != 0 {
			f.VoiceSpeed = v.Speed
		}
		if v.Stability != 0 {
			f.VoiceStability = v.Stability
		}
	}

	if m := a.Model; m != nil {
		if m.Provider != "" {
			f.ModelProvider = m.Provider
		}
		f.ModelName = m.Model
		if p, ok := FindModelProvider(f.ModelProvider); ok {
			f.ModelName = oneOf(m.Model, p.Models)
		}
		if m.Temperature != 0 {
			f.Temperature = m.Temperature
		}
		if m.MaxTokens != 0 {
			f.MaxTokens = m.MaxTokens
		}
	}

	return f, nil
}

// Validate checks the form the way the console widgets constrain input.
func (f AssistantForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("assistant name is required")),
		validation.Field(&f.FirstMessageMode, validation.In(stringsToAny(FirstMessageModes)...)),
		validation.Field(&f.MaxDurationSeconds, validation.Min(10), validation.Max(43200)),
		validation.Field(&f.VoiceSpeed, validation.Min(0.5), validation.Max(2.0)),
		validation.Field(&f.VoiceStability, validation.Max(1.0)),
		validation.Field(&f.Temperature, validation.Max(2.0)),
		validation.Field(&f.MaxTokens, validation.Min(1), validation.Max(4000)),
	)
}

// Payload builds the request body for a create or update call and cleans it.
func (f AssistantForm) Payload() map[string]any {
	phrases := make([]any, 0)
	for _, p := range SplitPhrases(f.EndCallPhrases) {
		phrases = append(phrases, p)
	}

	return CleanPayload(map[string]any{
		"name":               f.Name,
		"firstMessage":       f.FirstMessage,
		"firstMessageMode":   f.FirstMessageMode,
		"maxDurationSeconds": f.MaxDurationSeconds,
		"voice": map[string]any{
			"provider":  f.VoiceProvider,
			"voiceId":   f.VoiceID,
			"speed":     f.VoiceSpeed,
			"stability": f.VoiceStability,
		},
		"model": map[string]any{
			"provider":    f.ModelProvider,
			"model":       f.ModelName,
			"temperature": f.Temperature,
			"maxTokens":   f.MaxTokens,
			"messages": []any{
				map[string]any{"role": "system", "content": f.SystemMessage},
			},
		},
		"backgroundSound":  f.BackgroundSound,
		"endCallMessage":   f.EndCallMessage,
		"voicemailMessage": f.VoicemailMessage,
		"endCallPhrases":   phrases,
	})
}

// SplitPhrases splits newline-separated phrases, trimming blanks.
func SplitPhrases(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func oneOf(v string, options []string) string {
	for _, o := range options {
		if o == v {
			return v
		}
	}
	return options[0]
}

func stringsToAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
