// ABOUTME: Prompt assembly and keyword fallback replies
// ABOUTME: The fallback table answers in-character when Ollama is unreachable
package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are Wingman, a helpful AI assistant built into a productivity app. You help users manage their tasks, calendar, diary, and provide motivational support.

Key guidelines:
- Be concise but helpful
- Reference the user's actual data when relevant
- Provide actionable suggestions
- Be encouraging and supportive
- If asked about specific tasks or events, refer to the context provided
- Keep responses under 200 words unless more detail is specifically requested

`

// buildPrompt combines the system preamble, the assembled user context, and
// the message into one completion prompt.
func buildPrompt(message, userContext string) string {
	if userContext == "" {
		return fmt.Sprintf("%s\nUser: %s\nWingman:", systemPrompt, message)
	}
	return fmt.Sprintf("%s\nContext about the user:\n%s\n\nUser: %s\nWingman:",
		systemPrompt, userContext, message)
}

// fallbackResponse picks a canned reply matching the message topic. Used when
// the completion backend is unavailable so the chat surface stays responsive.
func fallbackResponse(message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAnyWord(lower, "task", "todo", "work"):
		return "I'd love to help with your tasks! It looks like there might be a connection issue with the AI service. You can still manage your tasks using the main interface."
	case containsAnyWord(lower, "calendar", "schedule", "event"):
		return "I can help you stay organized! While the AI service is temporarily unavailable, you can check your calendar and add events using the main interface."
	case containsAnyWord(lower, "diary", "mood", "feel"):
		return "Reflection is important! Even though the AI assistant is temporarily unavailable, you can still write in your diary to track your thoughts and mood."
	case containsAnyWord(lower, "hello", "hi", "hey"):
		return "Hello! I'm your Wingman assistant. The AI service is temporarily unavailable, but I'm still here to help you navigate the app!"
	default:
		return "I'm here to help! The AI service is temporarily unavailable, but you can still use all the app features. Try asking me again in a moment!"
	}
}

func containsAnyWord(haystack string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
