package core

import (
	"strings"

	"github.com/adamavenir/mention/internal/types"
)

// MentionMode is the phase of the mention state machine.
type MentionMode int

const (
	MentionIdle MentionMode = iota
	MentionComposing
	MentionEditing
)

func (m MentionMode) String() string {
	switch m {
	case MentionComposing:
		return "composing"
	case MentionEditing:
		return "editing"
	default:
		return "idle"
	}
}

// MentionState is the session state of one input field. Transitions never
// mutate a state; they return the next one.
type MentionState struct {
	Text            string
	Cursor          int
	Mentions        []types.Mention
	ShowSuggestions bool
	Query           string
	Highlight       int
	// EditingID is the mention under edit, zero when none.
	EditingID int64
	// EditStart is the offset of the "@" of the mention under edit.
	EditStart      int
	SuppressDetect bool
}

// Mode derives the current phase from the state.
func (s MentionState) Mode() MentionMode {
	if !s.ShowSuggestions {
		return MentionIdle
	}
	if s.EditingID != 0 {
		return MentionEditing
	}
	return MentionComposing
}

// EffectKind identifies a pending host-side action.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectSetCursor
)

// Effect is a UI action the host runs after it has rendered the new state.
type Effect struct {
	Kind   EffectKind
	Cursor int
}

// MentionKey is a key-down event the tracker may consume.
type MentionKey int

const (
	KeyNone MentionKey = iota
	KeyArrowDown
	KeyArrowUp
	KeyEnter
	KeyEscape
)

// MentionTracker runs the mention state machine against a user directory.
// It is not safe for concurrent use; the host feeds it one event at a time.
type MentionTracker struct {
	users []types.User
	ids   IDSource
	limit int
}

// NewMentionTracker creates a tracker over users. limit caps the candidate
// list; zero or less means no cap.
func NewMentionTracker(users []types.User, limit int) *MentionTracker {
	return &MentionTracker{
		users: append([]types.User(nil), users...),
		ids:   NewSequence(1),
		limit: limit,
	}
}

// Users returns the directory in order.
func (t *MentionTracker) Users() []types.User {
	return append([]types.User(nil), t.users...)
}

// SetUsers swaps the directory and recomputes the spans of s against it.
func (t *MentionTracker) SetUsers(s MentionState, users []types.User) MentionState {
	t.users = append([]types.User(nil), users...)
	next := s
	next.Mentions = t.recompute(s.Mentions, s.Text)
	return next
}

// Candidates returns the filtered suggestion list for s.
func (t *MentionTracker) Candidates(s MentionState) []types.User {
	return FilterUsers(t.users, s.Query, t.limit)
}

// HighlightedUser returns the candidate under the highlight.
func (t *MentionTracker) HighlightedUser(s MentionState) (types.User, bool) {
	candidates := t.Candidates(s)
	if len(candidates) == 0 {
		return types.User{}, false
	}
	return candidates[t.HighlightIndex(s)], true
}

// HighlightIndex returns the row HighlightedUser confirms.
func (t *MentionTracker) HighlightIndex(s MentionState) int {
	return wrapIndex(s.Highlight, len(t.Candidates(s)))
}

// TextChanged handles a new buffer and cursor reported by the input.
func (t *MentionTracker) TextChanged(s MentionState, text string, cursor int) MentionState {
	next := s
	next.Text = text
	next.Cursor = clampCursor(text, cursor)
	next.Mentions = t.recompute(s.Mentions, text)

	if next.SuppressDetect {
		next.SuppressDetect = false
		return next
	}

	if next.EditingID != 0 && next.Cursor > next.EditStart {
		if end, ok := editEnd(next); ok && next.Cursor <= end {
			query := editQuery(text, next.EditStart, next.Cursor)
			if query != s.Query {
				next.Highlight = 0
			}
			next.Query = query
			next.ShowSuggestions = true
			if mention, ok := mentionStartingAt(next.Mentions, next.EditStart); ok {
				next.EditingID = mention.ID
			}
			return next
		}
	}

	return detectComposing(next)
}

// editEnd returns the end of the mention under edit, or of what is left of
// it when the edit has broken it.
func editEnd(s MentionState) (int, bool) {
	if mention, ok := mentionStartingAt(s.Mentions, s.EditStart); ok {
		return mention.End, true
	}
	span := editSpanRe.FindString(runeSlice(s.Text, s.EditStart, runeLen(s.Text)))
	if span == "" {
		return 0, false
	}
	return s.EditStart + runeLen(span), true
}

// CursorMoved handles a click, arrow key or selection change.
func (t *MentionTracker) CursorMoved(s MentionState, cursor int) MentionState {
	next := s
	next.Cursor = clampCursor(s.Text, cursor)

	if mention, ok := mentionUnderCursor(next.Mentions, next.Cursor); ok {
		if user, found := t.userByID(mention.UserID); found {
			next.EditingID = mention.ID
			next.EditStart = mention.Start
			next.Query = user.Name
			next.ShowSuggestions = true
			next.Highlight = 0
			return next
		}
	}

	return detectComposing(next)
}

// MoveHighlight moves the highlight by delta, wrapping around the candidate
// list. It does nothing while the dropdown is hidden or empty.
func (t *MentionTracker) MoveHighlight(s MentionState, delta int) MentionState {
	if !s.ShowSuggestions {
		return s
	}
	count := len(t.Candidates(s))
	if count == 0 {
		return s
	}
	next := s
	next.Highlight = wrapIndex(s.Highlight+delta, count)
	return next
}

// ConfirmHighlighted inserts the highlighted candidate.
func (t *MentionTracker) ConfirmHighlighted(s MentionState) (MentionState, Effect) {
	if !s.ShowSuggestions {
		return s, Effect{}
	}
	user, ok := t.HighlightedUser(s)
	if !ok {
		return s, Effect{}
	}
	return t.Confirm(s, user)
}

// Confirm inserts user at the mention under edit, or replaces the token being
// composed. The returned effect moves the host cursor past the insertion.
func (t *MentionTracker) Confirm(s MentionState, user types.User) (MentionState, Effect) {
	if len(t.Candidates(s)) == 0 {
		return s, Effect{}
	}
	inserted := "@" + user.Name + " " + user.LastName

	var text string
	var cursor int
	if start, end, ok := t.editSpan(s); ok {
		text = runeSlice(s.Text, 0, start) + inserted + runeSlice(s.Text, end, runeLen(s.Text))
		cursor = start + runeLen(user.Name) + runeLen(user.LastName) + 2
	} else {
		start, _, found := FindComposingToken(s.Text, s.Cursor)
		if !found {
			return s, Effect{}
		}
		before := runeSlice(s.Text, 0, start)
		text = before + inserted + " " + runeSlice(s.Text, s.Cursor, runeLen(s.Text))
		cursor = runeLen(before) + runeLen(user.Name) + runeLen(user.LastName) + 3
	}

	next := s
	next.Text = text
	next.Cursor = cursor
	next.Mentions = t.recompute(s.Mentions, text)
	next.ShowSuggestions = false
	next.Query = ""
	next.Highlight = 0
	next.EditingID = 0
	next.EditStart = 0
	next.SuppressDetect = true
	return next, Effect{Kind: EffectSetCursor, Cursor: cursor}
}

// Dismiss hides the dropdown and drops edit focus. The buffer is untouched.
func (t *MentionTracker) Dismiss(s MentionState) MentionState {
	next := s
	next.ShowSuggestions = false
	next.EditingID = 0
	next.EditStart = 0
	return next
}

// CursorSettled records that the host finished a requested cursor move and
// releases the suppress latch.
func (t *MentionTracker) CursorSettled(s MentionState, cursor int) MentionState {
	next := s
	next.Cursor = clampCursor(s.Text, cursor)
	next.SuppressDetect = false
	return next
}

// HandleKey applies a navigation key. handled is false when the key should
// fall through to the host.
func (t *MentionTracker) HandleKey(s MentionState, key MentionKey) (next MentionState, effect Effect, handled bool) {
	if !s.ShowSuggestions {
		return s, Effect{}, false
	}
	if key == KeyEscape {
		return t.Dismiss(s), Effect{}, true
	}
	if len(t.Candidates(s)) == 0 {
		return s, Effect{}, false
	}
	switch key {
	case KeyArrowDown:
		return t.MoveHighlight(s, 1), Effect{}, true
	case KeyArrowUp:
		return t.MoveHighlight(s, -1), Effect{}, true
	case KeyEnter:
		next, effect = t.ConfirmHighlighted(s)
		return next, effect, true
	}
	return s, Effect{}, false
}

// recompute rebuilds spans for text. A span identical to one in prev keeps its
// id so renderers see a stable key.
func (t *MentionTracker) recompute(prev []types.Mention, text string) []types.Mention {
	mentions := RecomputeMentions(text, t.users, nil)
	for i := range mentions {
		if id, ok := carriedID(prev, mentions[i]); ok {
			mentions[i].ID = id
			continue
		}
		mentions[i].ID = t.ids()
	}
	return mentions
}

// editSpan locates the mention under edit in the current text.
func (t *MentionTracker) editSpan(s MentionState) (int, int, bool) {
	if s.EditingID == 0 {
		return 0, 0, false
	}
	for _, mention := range s.Mentions {
		if mention.ID == s.EditingID {
			return mention.Start, mention.End, true
		}
	}
	rest := runeSlice(s.Text, s.EditStart, runeLen(s.Text))
	span := editSpanRe.FindString(rest)
	if span == "" {
		return 0, 0, false
	}
	return s.EditStart, s.EditStart + runeLen(span), true
}

func (t *MentionTracker) userByID(id int64) (types.User, bool) {
	for _, user := range t.users {
		if user.ID == id {
			return user, true
		}
	}
	return types.User{}, false
}

func detectComposing(s MentionState) MentionState {
	next := s
	next.EditingID = 0
	next.EditStart = 0
	if _, query, ok := FindComposingToken(s.Text, s.Cursor); ok {
		next.ShowSuggestions = true
		next.Query = query
		next.Highlight = 0
		return next
	}
	next.ShowSuggestions = false
	next.Query = ""
	return next
}

// editQuery returns the first word typed after the "@" at start.
func editQuery(text string, start, cursor int) string {
	from := start + 1
	if from > cursor {
		return ""
	}
	typed := runeSlice(text, from, cursor)
	return strings.Split(typed, " ")[0]
}

func mentionUnderCursor(mentions []types.Mention, cursor int) (types.Mention, bool) {
	for _, mention := range mentions {
		if cursor >= mention.Start && cursor <= mention.End {
			return mention, true
		}
	}
	return types.Mention{}, false
}

func mentionStartingAt(mentions []types.Mention, start int) (types.Mention, bool) {
	for _, mention := range mentions {
		if mention.Start == start {
			return mention, true
		}
	}
	return types.Mention{}, false
}

func carriedID(prev []types.Mention, mention types.Mention) (int64, bool) {
	for _, old := range prev {
		if old.Start == mention.Start && old.End == mention.End &&
			old.UserID == mention.UserID && old.Text == mention.Text {
			return old.ID, true
		}
	}
	return 0, false
}

func wrapIndex(index, count int) int {
	if count <= 0 {
		return 0
	}
	return ((index % count) + count) % count
}
