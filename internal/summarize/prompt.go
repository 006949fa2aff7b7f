// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"text/template"
)

// Temperature is the sampling temperature for every summary request.
const Temperature float32 = 0.2

// FallbackSentence is what the model is told to answer when the abstract
// cannot support a summary.
const FallbackSentence = "No reliable abstract-based summary is possible."

// systemPrompt constrains the model to the abstract's explicit content.
const systemPrompt = `You are a careful research assistant who summarizes scholarly papers for a general audience.
Use ONLY information that is explicitly stated in the abstract you are given.
Do not invent or infer methods, results, numbers, datasets, or conclusions that the abstract does not state.
If the abstract does not specify something (for example the method, the sample, or the outcome), say explicitly that it is not specified.
Write 2-3 plain-language sentences.`

// userPromptTmpl embeds the abstract verbatim inside a quoted block.
var userPromptTmpl = template.Must(template.New("summary").Parse(`Summarize the following paper abstract in 2-3 sentences for a general audience.

Abstract:
"""
{{.Abstract}}
"""

If the abstract is empty or unclear, say: '{{.Fallback}}'`))

// Prompt is one two-message request to a text-generation backend.
type Prompt struct {
	System      string
	User        string
	Temperature float32
}

// BuildPrompt renders the system and user messages for abstract.
func BuildPrompt(abstract string) (Prompt, error) {
	var buf bytes.Buffer
	data := struct{ Abstract, Fallback string }{Abstract: abstract, Fallback: FallbackSentence}
	if err := userPromptTmpl.Execute(&buf, data); err != nil {
		return Prompt{}, err
	}
	return Prompt{
		System:      systemPrompt,
		User:        buf.String(),
		Temperature: Temperature,
	}, nil
}
