package search

import "strings"

// NextQuestion drives the guided QnA flow adjacent to the main funnel: given
// the questions already asked and the user's answers, it picks the follow-up.
// The exchange history travels with the request, so the flow needs no server
// state of its own.
func NextQuestion(questions, answers []string) string {
	if len(questions) == 0 {
		return "What is your budget range?"
	}

	last := strings.ToLower(questions[len(questions)-1])
	if strings.Contains(last, "budget") && len(answers) > 0 {
		answer := strings.ToLower(answers[len(answers)-1])
		switch {
		case strings.Contains(answer, "low"):
			return "Do you prefer a refurbished or new product?"
		case strings.Contains(answer, "high"):
			return "Are you looking for gaming or business use?"
		default:
			return "Can you specify your preferred price range?"
		}
	}

	return "Would you like more details on any of these products?"
}
