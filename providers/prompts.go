package providers

import (
	"fmt"
	"strings"

	"github.com/podiumlabs/arena/types"
)

// personaGeneratorSystem is the system instruction for persona generation.
const personaGeneratorSystem = `
You are an expert debate organizer and profiler. Your goal is to create two distinct, diametrically opposed personas based on a user-provided topic.
These personas should have conflicting worldviews, different speaking styles, specific backgrounds, hidden biases, and distinct voices (metaphorically).
One should be Pro (or side A) and one Con (or side B).
`

// debaterInstruction builds the system instruction for a debate turn from
// the session configuration.
func debaterInstruction(cfg types.DebateConfig) string {
	var tone string
	switch cfg.Tone {
	case types.ToneHumorous:
		tone = "Be funny, sarcastic, and use witty analogies. It's okay to be slightly absurd."
	case types.ToneAggressive:
		tone = "Be intense, provocative, and attack the opponent's logic mercilessly. Use strong language."
	case types.ToneAcademic:
		tone = "Use formal language, cite theoretical frameworks, and focus on empirical evidence and logic. Be polite but rigorous."
	default:
		tone = "Keep it professional, logical, and persuasive."
	}

	var length string
	switch cfg.Length {
	case types.LengthShort:
		length = "Keep your response extremely brief (under 30 words). Get straight to the point."
	case types.LengthLong:
		length = "You can elaborate on your points (up to 120 words). Provide detailed examples."
	default:
		length = "Keep your response concise (under 80 words)."
	}

	return fmt.Sprintf(`
You are a participant in a heated debate.
You must stay strictly in character.
%s
%s
Do not be overly polite; this is a clash of ideas.
Use formatting like *emphasis* where appropriate.
`, tone, length)
}

// judgeInstruction builds the system instruction for debate evaluation.
func judgeInstruction(cfg types.DebateConfig) string {
	var persona string
	switch cfg.Judge {
	case types.JudgeSarcastic:
		persona = "You are a sarcastic, witty judge who roasts the participants while scoring them. Be mean but funny."
	case types.JudgeHarsh:
		persona = "You are a strictly professional and very harsh judge. You hate logical fallacies and demand high standards. Give low scores if they fail."
	case types.JudgeConstructive:
		persona = "You are a kind, teacher-like judge. Focus on growth and provide very constructive feedback."
	default:
		persona = "You are an impartial, expert debate judge."
	}

	return fmt.Sprintf(`
%s
Analyze the conversation transcript provided.
Score both participants (Persona A and Persona B) on three criteria:
1. Logic (Logical consistency and reasoning)
2. Evidence (Use of examples, facts, or strong theoretical backing)
3. Novelty (Creativity of arguments and wit)
Scores should be out of 10.
Provide a one-sentence critique for each.
`, persona)
}

func langInstruction(lang types.Language, forJSON bool) string {
	if lang == types.LangZH {
		if forJSON {
			return "Provide names, roles, descriptions and styles in Chinese (Simplified)."
		}
		return "Respond in Chinese (Simplified) strictly."
	}
	if forJSON {
		return "Provide output in English."
	}
	return "Respond in English strictly."
}

// personaPrompt builds the persona generation prompt.
func personaPrompt(topic string, lang types.Language) string {
	return fmt.Sprintf(`
Topic: %q

Create two distinct personas to debate this topic.
Persona A should generally support the affirmative or a specific dominant viewpoint.
Persona B should support the negative or an opposing specific viewpoint.

Ensure they have deep backgrounds.

CRITICAL: Assign a specific ARCHETYPE to each.
Archetype Examples:
- The Doomer (Pessimistic, fatalistic)
- The Futurist (Obsessed with tech progress)
- The Traditionalist (Values old ways)
- The Contrarian (Argues just to argue)
- The Corporate Shill (Defends business interests)
- The Academic (Pedantic, uses big words)
- The Conspiracy Theorist (Connects unrelated dots)
- The Compassionate Activist (Emotional appeal)

Assign a unique 'style' (speaking style) that matches the archetype.

%s

Return strictly a JSON object with this structure:
{
  "personaA": {
    "name": "Name",
    "role": "Short Title (e.g. Traditionalist)",
    "description": "Personality description including background and bias",
    "avatar": "Single Emoji",
    "style": "Speaking style description"
  },
  "personaB": {
    "name": "Name",
    "role": "Short Title",
    "description": "Personality description including background and bias",
    "avatar": "Single Emoji",
    "style": "Speaking style description"
  }
}
`, topic, langInstruction(lang, true))
}

// conversationLog renders transcript history for turn prompts. System
// messages are omitted; user interjections and audience commentary are
// labeled so the debater can address them.
func conversationLog(messages []types.Message) string {
	var b strings.Builder
	for _, m := range messages {
		switch m.SenderID {
		case types.SenderSystem:
			continue
		case types.SenderUser:
			fmt.Fprintf(&b, "[Audience Member Interjects]: %s\n", m.Text)
		case types.SenderAudience:
			fmt.Fprintf(&b, "[Audience Commentary]: %s\n", m.Text)
		case types.SenderA:
			fmt.Fprintf(&b, "[Side A]: %s\n", m.Text)
		case types.SenderB:
			fmt.Fprintf(&b, "[Side B]: %s\n", m.Text)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// debaterLog renders only the A/B utterances, as seen by the judge.
func debaterLog(messages []types.Message) string {
	var b strings.Builder
	for _, m := range messages {
		if !m.SenderID.IsDebater() {
			continue
		}
		fmt.Fprintf(&b, "[%s]: %s\n", m.SenderID, m.Text)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// turnPrompt builds the prompt for one debate turn.
func turnPrompt(req TurnRequest) string {
	intervention := ""
	if req.Modifier != "" {
		intervention = fmt.Sprintf("\n!!! SPECIAL INTERVENTION: The moderator has imposed a constraint: %q. YOU MUST OBEY THIS MODIFIER FOR THIS TURN ONLY. !!!\n", req.Modifier)
	}

	return fmt.Sprintf(`
Current Debate Topic: %q

You are acting as:
Name: %s
Role: %s
Stance: %s
Speaking Style: %s

Your Opponent is:
Name: %s
Role: %s

Conversation History:
%s

INSTRUCTIONS:
- %s
- Respond to the last message (or start the debate if history is empty).
- If the last message was from the user (Audience Member), address their point while maintaining your stance against your opponent.
- Be witty, sharp, and in-character.
- Do not repeat yourself.
%s
`,
		req.Topic,
		req.Speaker.Name, req.Speaker.Role, req.Speaker.Description, req.Speaker.Style,
		req.Opponent.Name, req.Opponent.Role,
		conversationLog(req.Transcript),
		langInstruction(req.Lang, false),
		intervention,
	)
}

// evalPrompt builds the prompt for debate evaluation.
func evalPrompt(topic string, transcript []types.Message, lang types.Language) string {
	langNote := "Provide comments in English."
	if lang == types.LangZH {
		langNote = "Provide comments in Chinese (Simplified)."
	}
	return fmt.Sprintf(`
Topic: %s

Transcript:
%s

Evaluate the performance of A and B. %s Return JSON only.
`, topic, debaterLog(transcript), langNote)
}

// audiencePrompt builds the short audience reaction prompt.
func audiencePrompt(topic, lastText string, lang types.Language) string {
	langCtx := "in English"
	if lang == types.LangZH {
		langCtx = "in Chinese (Simplified)"
	}
	return fmt.Sprintf(`Context: A debate about %q. Last argument: %q.
Generate a very short (1-5 words) audience reaction %s.
Examples: "Agreed!", "What?", "No evidence!", "Exactly.", "Boo!", "Compelling point."`,
		topic, lastText, langCtx)
}

// CleanJSON strips markdown code fences that models sometimes wrap around
// JSON payloads.
func CleanJSON(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
