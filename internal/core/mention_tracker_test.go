package core

import (
	"testing"

	"github.com/adamavenir/mention/internal/types"
)

func newTestTracker() *MentionTracker {
	return NewMentionTracker(testUsers, 0)
}

// typeText replays a programmatic or typed change with the cursor at the end.
func typeText(tr *MentionTracker, s MentionState, text string) MentionState {
	return tr.TextChanged(s, text, runeLen(text))
}

func TestTextChangedEntersComposing(t *testing.T) {
	tr := newTestTracker()
	s := typeText(tr, MentionState{}, "Hi @Ali")

	if s.Mode() != MentionComposing {
		t.Fatalf("mode: got %v want composing", s.Mode())
	}
	if s.Query != "Ali" {
		t.Fatalf("query: got %q want %q", s.Query, "Ali")
	}
	if s.Highlight != 0 {
		t.Fatalf("highlight: got %d want 0", s.Highlight)
	}
	candidates := tr.Candidates(s)
	if len(candidates) != 1 || candidates[0].ID != 1 {
		t.Fatalf("unexpected candidates %+v", candidates)
	}
}

func TestTextChangedTokenBoundary(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "x@Bob Johnson", 5)
	if s.ShowSuggestions {
		t.Fatalf("expected suggestions hidden when @ is glued to a word")
	}
	if s.Mode() != MentionIdle {
		t.Fatalf("mode: got %v want idle", s.Mode())
	}
}

func TestTextChangedLeavesComposing(t *testing.T) {
	tr := newTestTracker()
	s := typeText(tr, MentionState{}, "@Bob")
	s = typeText(tr, s, "@Bob Johnson and")
	if s.Mode() != MentionIdle {
		t.Fatalf("mode: got %v want idle", s.Mode())
	}
	if s.Query != "" {
		t.Fatalf("query should be cleared, got %q", s.Query)
	}
	if len(s.Mentions) != 1 {
		t.Fatalf("expected typed mention to be recognised, got %+v", s.Mentions)
	}
}

func TestRoundTripInsertion(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Ali", 7)

	next, effect := tr.ConfirmHighlighted(s)

	if next.Text != "Hi @Alice Smith " {
		t.Fatalf("text: got %q", next.Text)
	}
	wantCursor := runeLen("Hi ") + runeLen("@Alice Smith ")
	if effect.Kind != EffectSetCursor || effect.Cursor != wantCursor {
		t.Fatalf("effect: got %+v want cursor %d", effect, wantCursor)
	}
	if len(next.Mentions) != 1 {
		t.Fatalf("expected one mention, got %+v", next.Mentions)
	}
	if m := next.Mentions[0]; m.Start != 3 || m.End != 15 || m.UserID != 1 {
		t.Fatalf("unexpected span %+v", m)
	}
	if next.ShowSuggestions || next.Query != "" || next.EditingID != 0 {
		t.Fatalf("expected dropdown reset, got %+v", next)
	}
	if !next.SuppressDetect {
		t.Fatalf("expected suppress latch after insertion")
	}
}

func TestConfirmKeepsTextAfterCursor(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Bo see you", 6)
	if s.Mode() != MentionComposing {
		t.Fatalf("expected composing, got %v", s.Mode())
	}
	next, effect := tr.ConfirmHighlighted(s)
	if next.Text != "Hi @Bob Johnson  see you" {
		t.Fatalf("text: got %q", next.Text)
	}
	if effect.Cursor != 16 {
		t.Fatalf("cursor: got %d want 16", effect.Cursor)
	}
}

func TestSuppressLatchSkipsDetection(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "@Ch", 3)
	s, effect := tr.ConfirmHighlighted(s)

	// The host echoes the spliced value back before moving the cursor.
	s = tr.TextChanged(s, s.Text, 3)
	if s.ShowSuggestions {
		t.Fatalf("latched change must not reopen suggestions")
	}
	if s.SuppressDetect {
		t.Fatalf("latch should be released by the echoed change")
	}
	if len(s.Mentions) != 1 {
		t.Fatalf("mentions must still be recomputed, got %+v", s.Mentions)
	}

	s = tr.CursorSettled(s, effect.Cursor)
	if s.Cursor != effect.Cursor || s.SuppressDetect {
		t.Fatalf("unexpected settled state %+v", s)
	}
}

func TestCursorMovedIntoMentionEntersEditing(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Alice Smith!", 16)
	if len(s.Mentions) != 1 {
		t.Fatalf("expected recognised mention")
	}

	s = tr.CursorMoved(s, 8)

	if s.Mode() != MentionEditing {
		t.Fatalf("mode: got %v want editing", s.Mode())
	}
	if s.EditingID != s.Mentions[0].ID {
		t.Fatalf("editing id: got %d want %d", s.EditingID, s.Mentions[0].ID)
	}
	if s.Query != "Alice" {
		t.Fatalf("query: got %q want first name", s.Query)
	}
}

func TestCursorMovedAtMentionEdges(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Alice Smith!", 16)
	for _, cursor := range []int{3, 15} {
		if got := tr.CursorMoved(s, cursor); got.Mode() != MentionEditing {
			t.Fatalf("cursor %d: got %v want editing", cursor, got.Mode())
		}
	}
	if got := tr.CursorMoved(s, 2); got.Mode() != MentionIdle {
		t.Fatalf("cursor 2: got %v want idle", got.Mode())
	}
}

func TestEditInPlace(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Alice Smith!", 16)
	s = tr.CursorMoved(s, 10)

	next, effect := tr.Confirm(s, testUsers[1])

	if next.Text != "Hi @Bob Johnson!" {
		t.Fatalf("text: got %q", next.Text)
	}
	if effect.Cursor != 3+3+7+2 {
		t.Fatalf("cursor: got %d", effect.Cursor)
	}
	if len(next.Mentions) != 1 || next.Mentions[0].UserID != 2 {
		t.Fatalf("expected Bob mention, got %+v", next.Mentions)
	}
	if next.EditingID != 0 || next.ShowSuggestions {
		t.Fatalf("expected edit focus cleared, got %+v", next)
	}
}

func TestEditingQueryFollowsTyping(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Alice Smith!", 16)
	s = tr.CursorMoved(s, 9)

	// Delete "ce" from "Alice": "Hi @Ali Smith!" with the cursor after "Ali".
	s = tr.TextChanged(s, "Hi @Ali Smith!", 7)

	if s.Mode() != MentionEditing {
		t.Fatalf("mode: got %v want editing", s.Mode())
	}
	if s.Query != "Ali" {
		t.Fatalf("query: got %q want %q", s.Query, "Ali")
	}
	if len(s.Mentions) != 0 {
		t.Fatalf("broken mention must drop out of the span list, got %+v", s.Mentions)
	}

	next, _ := tr.Confirm(s, testUsers[2])
	if next.Text != "Hi @Charlie Brown!" {
		t.Fatalf("text: got %q", next.Text)
	}
}

func TestEditingEndsPastMentionEnd(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		mode   MentionMode
	}{
		{name: "typing after intact mention", text: "Hi @Alice Smith! ", cursor: 16, mode: MentionIdle},
		{name: "typing inside broken mention", text: "Hi @Alice Smithx ", cursor: 16, mode: MentionEditing},
		{name: "space after broken mention", text: "Hi @Alice Smithx  ", cursor: 17, mode: MentionIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTracker()
			s := tr.TextChanged(MentionState{}, "Hi @Alice Smith ", 16)
			s = tr.CursorMoved(s, 15)
			if s.Mode() != MentionEditing {
				t.Fatalf("setup: got %v want editing", s.Mode())
			}

			s = tr.TextChanged(s, tt.text, tt.cursor)
			if s.Mode() != tt.mode {
				t.Fatalf("mode: got %v want %v (%+v)", s.Mode(), tt.mode, s)
			}
			if tt.mode == MentionIdle && s.EditingID != 0 {
				t.Fatalf("editing id should clear, got %d", s.EditingID)
			}
		})
	}
}

func TestEditingResetsHighlightWhenQueryChanges(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Bob Johnson", 15)
	s = tr.CursorMoved(s, 4)
	s.Highlight = 2

	s = tr.TextChanged(s, "Hi @CBob Johnson", 5)
	if s.Highlight != 0 {
		t.Fatalf("highlight: got %d want 0", s.Highlight)
	}
	if got := tr.HighlightIndex(s); got != 0 {
		t.Fatalf("highlight index: got %d", got)
	}
}

func TestEditingEndsWhenCursorReachesStart(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Alice Smith", 15)
	s = tr.CursorMoved(s, 5)
	s = tr.TextChanged(s, "Hi Alice Smith", 3)
	if s.Mode() != MentionIdle || s.EditingID != 0 {
		t.Fatalf("expected idle after deleting the @, got %+v", s)
	}
}

func TestNavigationWraps(t *testing.T) {
	tr := newTestTracker()
	s := typeText(tr, MentionState{}, "@")
	if len(tr.Candidates(s)) != 3 {
		t.Fatalf("empty query should list everyone")
	}

	s, _, handled := tr.HandleKey(s, KeyArrowUp)
	if !handled || s.Highlight != 2 {
		t.Fatalf("up from 0 should wrap to 2, got %d", s.Highlight)
	}
	s, _, _ = tr.HandleKey(s, KeyArrowDown)
	if s.Highlight != 0 {
		t.Fatalf("down from 2 should wrap to 0, got %d", s.Highlight)
	}
	s, _, _ = tr.HandleKey(s, KeyArrowDown)
	if s.Highlight != 1 {
		t.Fatalf("down should move to 1, got %d", s.Highlight)
	}

	next, effect, handled := tr.HandleKey(s, KeyEnter)
	if !handled || next.Text != "@Bob Johnson " || effect.Kind != EffectSetCursor {
		t.Fatalf("enter should insert highlighted user, got %q", next.Text)
	}
}

func TestNavigationIgnoredWhenHidden(t *testing.T) {
	tr := newTestTracker()
	s := typeText(tr, MentionState{}, "plain")
	for _, key := range []MentionKey{KeyArrowDown, KeyArrowUp, KeyEnter, KeyEscape} {
		next, effect, handled := tr.HandleKey(s, key)
		if handled || effect.Kind != EffectNone || next.Highlight != s.Highlight {
			t.Fatalf("key %v should fall through while idle", key)
		}
	}
}

func TestConfirmWithNoCandidatesIsNoop(t *testing.T) {
	tr := newTestTracker()
	s := typeText(tr, MentionState{}, "@Zed")
	if !s.ShowSuggestions {
		t.Fatalf("composing should show suggestions even with no matches")
	}
	next, effect := tr.ConfirmHighlighted(s)
	if next.Text != s.Text || effect.Kind != EffectNone || next.SuppressDetect {
		t.Fatalf("expected no-op, got %+v %+v", next, effect)
	}
	_, _, handled := tr.HandleKey(s, KeyEnter)
	if handled {
		t.Fatalf("enter with no candidates should fall through")
	}
	next, effect = tr.Confirm(s, testUsers[0])
	if next.Text != s.Text || effect.Kind != EffectNone {
		t.Fatalf("pointer confirm with empty list should be a no-op")
	}
}

func TestEscapeDismissal(t *testing.T) {
	tr := newTestTracker()
	s := tr.TextChanged(MentionState{}, "Hi @Alice Smith!", 16)
	s = tr.CursorMoved(s, 6)

	next, _, handled := tr.HandleKey(s, KeyEscape)

	if !handled {
		t.Fatalf("escape should be consumed while suggestions are visible")
	}
	if next.ShowSuggestions || next.EditingID != 0 {
		t.Fatalf("expected dropdown hidden and focus cleared, got %+v", next)
	}
	if next.Text != s.Text {
		t.Fatalf("escape must not touch the buffer")
	}
}

func TestMentionIDsStayStable(t *testing.T) {
	tr := newTestTracker()
	s := typeText(tr, MentionState{}, "@Alice Smith")
	id := s.Mentions[0].ID
	s = typeText(tr, s, "@Alice Smith hi")
	if s.Mentions[0].ID != id {
		t.Fatalf("unchanged span should keep its id: %d vs %d", s.Mentions[0].ID, id)
	}
	s = typeText(tr, s, "x @Alice Smith hi")
	if s.Mentions[0].ID == id {
		t.Fatalf("moved span should get a fresh id")
	}
}

func TestSetUsersRecomputes(t *testing.T) {
	tr := newTestTracker()
	s := typeText(tr, MentionState{}, "hi @Dana Scully")
	if len(s.Mentions) != 0 {
		t.Fatalf("unknown user should not be a mention")
	}
	users := append(tr.Users(), types.User{ID: 4, Name: "Dana", LastName: "Scully"})
	s = tr.SetUsers(s, users)
	if len(s.Mentions) != 1 || s.Mentions[0].UserID != 4 {
		t.Fatalf("expected Dana mention after directory reload, got %+v", s.Mentions)
	}
}

func TestCandidateLimit(t *testing.T) {
	tr := NewMentionTracker(testUsers, 2)
	s := typeText(tr, MentionState{}, "@")
	if got := len(tr.Candidates(s)); got != 2 {
		t.Fatalf("expected limit of 2 candidates, got %d", got)
	}
	s = tr.MoveHighlight(s, 3)
	if s.Highlight != 1 {
		t.Fatalf("highlight should wrap within the limited list, got %d", s.Highlight)
	}
}
