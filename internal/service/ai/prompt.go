package ai

import (
	"fmt"
	"strings"

	"github.com/uptura/site/backend/internal/config"
	"github.com/uptura/site/backend/internal/model/persona"
)

// BuildSystemPrompt renders the system message for a persona.
// PromptFull reproduces the long-form briefing; PromptConcise is the short
// variant with the same facts. Unknown variants fall back to PromptFull.
func BuildSystemPrompt(p persona.Persona, variant string) string {
	if variant == config.PromptConcise {
		return buildConcisePrompt(p)
	}
	return buildFullPrompt(p)
}

func buildFullPrompt(p persona.Persona) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s.\n", p.Name, p.Role)
	b.WriteString(p.Goal)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s specializes in:\n", p.Agency)
	for i, s := range p.Services {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, s.Name, s.Description)
	}

	b.WriteString("\nContact Info:\n")
	fmt.Fprintf(&b, "- Website: %s\n", p.Contact.Website)
	fmt.Fprintf(&b, "- Email: %s\n", p.Contact.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", p.Contact.Phone)
	fmt.Fprintf(&b, "- Location: %s\n", p.Contact.Location)

	b.WriteString("\n")
	b.WriteString(p.Guidelines)
	return b.String()
}

func buildConcisePrompt(p persona.Persona) string {
	return fmt.Sprintf(
		"You are %s, %s. Services: %s. Contact: %s, %s, %s. Be polite, professional and brief; if unsure, point the user to email or phone.",
		p.Name,
		p.Role,
		strings.Join(p.ServiceNames(), ", "),
		p.Contact.Website,
		p.Contact.Email,
		p.Contact.Phone,
	)
}
