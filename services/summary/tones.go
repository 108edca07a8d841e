package summary

import (
	"yt-summarizer/errors"
)

// Tone presets. Each maps to a fixed instruction string that leads the
// prompt sent to the model.
const (
	ToneProfessional = "Professional"
	ToneFunny        = "Funny"
	ToneBrisk        = "Brisk"
	ToneSerious      = "Serious"
	ToneGenZ         = "GenZ"
)

var toneInstructions = map[string]string{
	ToneProfessional: "Use a professional and formal tone.",
	ToneFunny:        "Be humorous and entertaining in your summary.",
	ToneBrisk:        "Be concise and to-the-point.",
	ToneSerious:      "Maintain a serious and analytical tone.",
	ToneGenZ:         "Use Gen Z slang and casual language, including modern internet expressions.",
}

// Tones lists the preset names in display order.
func Tones() []string {
	return []string{ToneProfessional, ToneFunny, ToneBrisk, ToneSerious, ToneGenZ}
}

// DefaultTemplate renders the stock system instructions around a tone
// instruction. This is what users see (and may edit) as the prompt.
func DefaultTemplate(toneInstruction string) string {
	return "You are a summarizing assistant responsible for analyzing the content of YouTube videos. " +
		toneInstruction + " " +
		`The user will feed you transcriptions but you should always refer to the content in your response as "the video". ` +
		"Focus on accurately summarizing the main points and key details of the videos. " +
		"Do not comment on the style of the video (e.g., whether it is a voiceover or conversational). " +
		"Do never mention or imply the existence of text, transcription, or any written format. " +
		`Use phrases like "The video discusses..." or "According to the video...". ` +
		"Strive to be the best summarizer possible, providing clear, and informative summaries that exclusively reference the video content."
}

// DefaultPrompt is the stock template with the Professional tone, shown
// to users as the editable starting point.
func DefaultPrompt() string {
	return DefaultTemplate(toneInstructions[ToneProfessional])
}

// ResolveInstruction picks the instruction text for a request. A custom
// override wins outright and the tone selection is ignored. Otherwise
// the tone sentence is spliced into the stock template; an empty tone
// falls back to Professional.
func ResolveInstruction(tone, custom string) (string, error) {
	const op = "summary.ResolveInstruction"

	if custom != "" {
		return custom, nil
	}
	if tone == "" {
		tone = ToneProfessional
	}

	instruction, ok := toneInstructions[tone]
	if !ok {
		return "", errors.InvalidInput(op, nil, "Unknown tone: "+tone)
	}
	return DefaultTemplate(instruction), nil
}

// BuildPrompt composes the final prompt: the instruction followed
// directly by the transcript text.
func BuildPrompt(instruction, transcript string) string {
	return instruction + transcript
}
