package llm

// BuildPrompt keeps the newest messages whose estimated size fits tokenLimit,
// drops leading non-user turns so the window opens with the user, and
// prepends the system prompt. The newest user turn is always kept. A
// tokenLimit <= 0 keeps the whole history.
func BuildPrompt(systemPrompt string, history []Message, tokenLimit int) []Message {
	start := 0
	if tokenLimit > 0 {
		budget := tokenLimit
		if systemPrompt != "" {
			budget -= RoughEstimateTokens(systemPrompt)
		}
		start = len(history)
		for i := len(history) - 1; i >= 0; i-- {
			cost := RoughEstimateTokens(history[i].Content)
			if cost > budget {
				break
			}
			budget -= cost
			start = i
		}
		// the newest message is always sent, even when it alone exceeds the budget
		if start == len(history) && len(history) > 0 {
			start = len(history) - 1
		}
	}

	for start < len(history) && history[start].Role != User {
		start++
	}
	// no user turn in the window: widen it back to the newest user turn
	if start == len(history) {
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].Role == User {
				start = i
				break
			}
		}
	}

	prompt := make([]Message, 0, len(history)-start+1)
	if systemPrompt != "" {
		prompt = append(prompt, Message{Role: System, Content: systemPrompt})
	}
	return append(prompt, history[start:]...)
}
