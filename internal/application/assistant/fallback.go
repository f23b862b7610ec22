package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/turtacn/ScholarAI/internal/domain/scheme"
)

var greetingPattern = regexp.MustCompile(`\b(hello|hi|hey)\b`)

// Fallback answers locally when no completion backend is reachable.  It
// matches keywords in the latest user message; deadline, eligibility and
// document answers are built from the catalog passed in.
func Fallback(message string, schemes []scheme.Scheme) string {
	lower := strings.ToLower(message)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case greetingPattern.MatchString(lower):
		return "Hello! I'm your AI scholarship assistant. How can I help you find financial aid today?"
	case has("scholarship", "financial aid"):
		return scholarshipAnswer(schemes)
	case has("deadline", "due date"):
		return deadlineAnswer(schemes)
	case has("eligibility", "qualify", "eligible"):
		return eligibilityAnswer(schemes)
	case has("document", "require"):
		return documentAnswer(schemes)
	case has("profile", "information"):
		return "Completing your profile helps me provide more accurate scholarship recommendations. Important details include your education level, age, location, category (SC/ST/OBC/General), family income, and academic interests. The more complete your profile, the better I can match you with suitable opportunities. Would you like to update your profile now?"
	case has("how") && has("apply"):
		return applyAnswer(schemes)
	case has("thank"):
		return "You're welcome! I'm here to help you navigate the scholarship application process. If you have more questions in the future or need guidance on specific scholarships, feel free to ask. Good luck with your applications!"
	}
	return "I understand you're asking about " + strings.TrimSpace(message) + ". As your AI scholarship assistant, I'm here to help with all aspects of finding and applying for financial aid. Could you provide more specific details about what you're looking for, so I can give you the most relevant information?"
}

func emptyCatalog() string {
	return "There are no schemes in the catalog right now. Please check back soon, and complete your profile so I can recommend new opportunities as they are added."
}

func scholarshipAnswer(schemes []scheme.Scheme) string {
	if len(schemes) == 0 {
		return emptyCatalog()
	}
	var sb strings.Builder
	sb.WriteString("Based on the information in our database, we have several options that might interest you.")
	for _, s := range limit(schemes, 3) {
		fmt.Fprintf(&sb, " %s has a deadline of %s.", s.Title, s.DeadlineLabel())
	}
	sb.WriteString(" To provide more personalized recommendations, could you share some details about your education level, location, and specific interests?")
	return sb.String()
}

func deadlineAnswer(schemes []scheme.Scheme) string {
	if len(schemes) == 0 {
		return emptyCatalog()
	}
	var sb strings.Builder
	sb.WriteString("I'm tracking several important deadlines for you.")
	for _, s := range schemes {
		fmt.Fprintf(&sb, " %s is due by %s.", s.Title, s.DeadlineLabel())
	}
	sb.WriteString(" I recommend keeping notifications on so you don't miss these dates.")
	return sb.String()
}

func eligibilityAnswer(schemes []scheme.Scheme) string {
	if len(schemes) == 0 {
		return emptyCatalog()
	}
	var sb strings.Builder
	sb.WriteString("Eligibility requirements vary by program.")
	for _, s := range schemes {
		fmt.Fprintf(&sb, " For %s: %s.", s.Title, strings.Join(s.Eligibility, ", "))
	}
	sb.WriteString(" Would you like me to check your eligibility for a specific scholarship?")
	return sb.String()
}

func documentAnswer(schemes []scheme.Scheme) string {
	if len(schemes) == 0 {
		return emptyCatalog()
	}
	var sb strings.Builder
	sb.WriteString("Most scholarships require standard documentation.")
	for _, s := range schemes {
		fmt.Fprintf(&sb, " %s requires: %s.", s.Title, strings.Join(s.Documents, ", "))
	}
	sb.WriteString(" I recommend gathering these documents early. Is there a specific scholarship you're preparing documents for?")
	return sb.String()
}

func applyAnswer(schemes []scheme.Scheme) string {
	var sb strings.Builder
	sb.WriteString("The application process typically involves creating an account on the scholarship portal, filling out personal and academic details, uploading required documents, and submitting the application before the deadline.")
	for _, s := range limit(schemes, 3) {
		fmt.Fprintf(&sb, " For %s, apply at %s.", s.Title, s.Link)
	}
	sb.WriteString(" I can provide step-by-step guidance for any specific scholarship you're interested in.")
	return sb.String()
}

func limit(schemes []scheme.Scheme, n int) []scheme.Scheme {
	if len(schemes) > n {
		return schemes[:n]
	}
	return schemes
}

//Personal.AI order the ending
