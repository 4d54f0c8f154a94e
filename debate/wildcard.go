package debate

// Modifiers is the fixed pool of one-shot style directives a wildcard
// draws from. Each affects exactly the next generated turn.
var Modifiers = []string{
	"Speak in rhymes",
	"Switch sides (argue the opponent's point)",
	"Speak like a pirate",
	"Use heavy Gen Z slang",
	"Act incredibly paranoid",
	"Speak in haiku",
	"Address the audience directly and break the fourth wall",
	"Use metaphors involving food only",
	"Shout (USE CAPS LOCK)",
}
