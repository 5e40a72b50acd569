package types

// User is a directory entry that can be mentioned.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

// FullName returns "First Last".
func (u User) FullName() string {
	return u.Name + " " + u.LastName
}

// Mention is a recognised "@First Last" span inside an input buffer.
// Start and End are half-open rune offsets.
type Mention struct {
	ID     int64  `json:"id"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	UserID int64  `json:"userId"`
	Text   string `json:"text"`
}

// Message is a submitted input buffer.
type Message struct {
	GUID     string           `json:"guid"`
	TS       int64            `json:"ts"`
	From     string           `json:"from"`
	Body     string           `json:"body"`
	Mentions []MessageMention `json:"mentions"`
}

// MessageMention is a mention span persisted with its message.
type MessageMention struct {
	UserID int64  `json:"userId"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Text   string `json:"text"`
}

// ConfigEntry represents a stored key/value pair.
type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
