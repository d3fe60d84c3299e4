package advisor

import (
	"fmt"
	"strings"

	"github.com/glamourhall/glamourhall/internal/models"
)

const keywordInstruction = `Finish your reply with a single line in exactly this format:
Search Keywords: <term one>, <term two>
Use at most two short e-commerce search terms for items you recommended. If nothing is worth shopping for, omit the line.`

const visionPrompt = `Describe the outfit in this photo for a fashion stylist: garment types, colors, fabrics, fit, and overall vibe. Two or three sentences, no preamble.`

func buildAdvicePrompt(prompt string, history []models.Message, prefs models.Preferences) string {
	var b strings.Builder

	b.WriteString("You are Glam, a warm and practical fashion stylist.\n")
	writeProfile(&b, prefs)
	writeHistory(&b, history)

	fmt.Fprintf(&b, "\nUser: %s\n\n", prompt)
	b.WriteString("Give specific, wearable advice in a few sentences.\n")
	b.WriteString(keywordInstruction)

	return b.String()
}

func buildRefinementPrompt(description, prompt string, history []models.Message, prefs models.Preferences) string {
	var b strings.Builder

	b.WriteString("You are Glam, a warm and practical fashion stylist.\n")
	writeProfile(&b, prefs)
	writeHistory(&b, history)

	fmt.Fprintf(&b, "\nThe user shared a photo. What it shows: %s\n", description)
	if prompt != "" {
		fmt.Fprintf(&b, "The user asked: %s\n", prompt)
	}

	b.WriteString("\nAdvise how to style, improve, or accessorize this look in a few sentences.\n")
	b.WriteString(keywordInstruction)

	return b.String()
}

func writeProfile(b *strings.Builder, prefs models.Preferences) {
	var facts []string
	if prefs.Gender != "" {
		facts = append(facts, "gender: "+prefs.Gender)
	}
	if prefs.Age > 0 {
		facts = append(facts, fmt.Sprintf("age: %d", prefs.Age))
	}
	if prefs.Height != "" {
		facts = append(facts, "height: "+prefs.Height)
	}
	if len(facts) > 0 {
		fmt.Fprintf(b, "About the user: %s.\n", strings.Join(facts, ", "))
	}
}

// writeHistory includes only the most recent user/assistant pair; the full
// history adds tokens without improving the advice.
func writeHistory(b *strings.Builder, history []models.Message) {
	var lastUser, lastAssistant *models.Message
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		switch {
		case m.Role == models.RoleAssistant && lastAssistant == nil:
			lastAssistant = &history[i]
		case m.Role == models.RoleUser && lastUser == nil:
			lastUser = &history[i]
		}
		if lastUser != nil && lastAssistant != nil {
			break
		}
	}

	if lastUser != nil {
		fmt.Fprintf(b, "Earlier, the user said: %s\n", lastUser.Content)
	}
	if lastAssistant != nil {
		fmt.Fprintf(b, "You previously replied: %s\n", lastAssistant.Content)
	}
}
