package constant

// Crisis keyword tiers for the safety gate.
// Matching is case-insensitive substring matching, no stemming or negation
// handling. Every severe phrase must also be covered by the concern tier
// (severe implies concern); the gate tests enforce this.

// SevereCrisisKeywords trigger an immediate pipeline shutdown and the fixed
// emergency resources response.
var SevereCrisisKeywords = []string{
	"kill myself",
	"killing myself",
	"end my life",
	"ending my life",
	"suicide",
	"suicidal",
	"want to die",
	"wanna die",
	"better off dead",
	"take my own life",
	"hurt myself badly",
	"end it all",
	"no reason to live",
}

// ConcernCrisisKeywords trigger the crisis-resources footer on an otherwise
// normal reply. This tier is a superset of the severe tier.
var ConcernCrisisKeywords = []string{
	"kill myself",
	"killing myself",
	"end my life",
	"ending my life",
	"suicide",
	"suicidal",
	"want to die",
	"wanna die",
	"better off dead",
	"take my own life",
	"hurt myself badly",
	"end it all",
	"no reason to live",
	"self harm",
	"self-harm",
	"hurt myself",
	"cutting myself",
	"hopeless",
	"worthless",
	"can't go on",
	"cant go on",
	"give up on life",
	"hate myself",
	"no one cares",
	"nobody cares",
	"cant take it anymore",
	"can't take it anymore",
}

// SevereCrisisResponse is returned verbatim when the gate reports severe.
// It must contain the literal hotline numbers.
const SevereCrisisResponse = `I'm really concerned about what you just shared. You don't have to face this alone, and there are people ready to help you right now.

**Please reach out immediately:**
- **988** — Suicide & Crisis Lifeline (call or text, 24/7)
- **Text HOME to 741741** — Crisis Text Line
- **911** — if you are in immediate danger

If you can, please also talk to someone you trust — a friend, family member, or counselor at your school. Your life matters.`

// CrisisResourcesFooter is appended deterministically to generated replies
// when the gate reports concern (not requested from the model).
const CrisisResourcesFooter = `

---
It sounds like you're going through a difficult time. Support is available:
- **988** — Suicide & Crisis Lifeline (call or text, 24/7)
- **Text HOME to 741741** — Crisis Text Line`

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)
