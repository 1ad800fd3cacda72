package domain

// Role tags who produced a chat turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatTurn is a single role-tagged entry of a transcript.
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// SafetySetting is one harm category threshold sent with every generation call.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

const blockMediumAndAbove = "BLOCK_MEDIUM_AND_ABOVE"

// DefaultSafetyPolicy is the fixed content policy of the chat widget.
var DefaultSafetyPolicy = []SafetySetting{
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: blockMediumAndAbove},
}
