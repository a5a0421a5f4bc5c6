package reasoning

import (
	"fmt"
	"strings"
)

const (
	// PlainFallback is what Plain returns when the model gives nothing usable.
	PlainFallback = "I am sorry, I could not find an answer to your query."

	// SynthesizeFallback is what ChainOfThought returns when it cannot
	// produce a final answer.
	SynthesizeFallback = "I'm sorry, I couldn't formulate a response based on the information provided."

	defaultSystemPrompt = "You are a helpful AI assistant."

	thinkingSystemPrompt = `You are an AI assistant that uses a Chain of Thought (CoT) approach with reflection to answer queries. Follow these steps:

1. Think through the problem step by step within the <thinking> tags.
2. Reflect on your thinking to check for any errors or improvements within the <reflection> tags.
3. Make any necessary adjustments based on your reflection.
4. Provide your final, concise answer within the <output> tags.

Important: The <thinking> and <reflection> sections are for your internal reasoning process only.
Do not include any part of the final answer in these sections.
The actual response to the query must be entirely contained within the <output> tags.

Use the following format for your response:
<thinking>
[Your step-by-step reasoning goes here. This is your internal thought process, not the final answer.]
<reflection>
[Your reflection on your reasoning, checking for errors or improvements]
</reflection>
[Any adjustments to your thinking based on your reflection]
</thinking>
<output>
[Your final, concise answer to the query. This is the only part that will be shown to the user.]
</output>`

	validateSystemPrompt   = "You are an AI assistant that will validate if a set of reasoning thoughts are answering a user question."
	synthesizeSystemPrompt = "You are an AI assistant that will formulate a final answer based on the thinking process."
)

// joinThoughts is the single place thoughts are concatenated.
func joinThoughts(thoughts []string) string {
	return strings.Join(thoughts, "\n\n")
}

func validatePrompt(userMessage string, thoughts []string) string {
	return fmt.Sprintf(
		"Here is the thinking process for the question '%s'.\n\n"+
			"Based on the following conversation history\n\n"+
			"%s\n\n"+
			"Is the user question %s answered? Answer only 'Yes' or 'No', nothing else.",
		userMessage, joinThoughts(thoughts), userMessage,
	)
}

func synthesizePrompt(userMessage string, thoughts []string) string {
	return fmt.Sprintf(
		"Given the following question %s, and the following thinking, formulate a clear and concise answer to the user.\n\n"+
			"Compiled Information:\n%s\n\n"+
			"Final Answer:",
		userMessage, joinThoughts(thoughts),
	)
}
