package core

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adamavenir/mention/internal/types"
	"golang.org/x/text/cases"
)

var (
	// mentionRe matches a strict two-word mention: "@First Last".
	mentionRe = regexp.MustCompile(`@(\p{L}+ \p{L}+)`)
	// composingRe matches an in-progress mention that ends the text.
	composingRe = regexp.MustCompile(`@(\p{L}*(?: \p{L}*)?)$`)
	// editSpanRe matches whatever is left of a mention that is being rewritten.
	editSpanRe = regexp.MustCompile(`^@\p{L}*(?: \p{L}+)?`)
)

// IDSource hands out mention ids.
type IDSource func() int64

// NewSequence returns an IDSource counting up from start.
func NewSequence(start int64) IDSource {
	next := start
	return func() int64 {
		id := next
		next++
		return id
	}
}

// RecomputeMentions scans text left to right and returns a mention for every
// "@First Last" token naming a known user. Tokens that match no user are left
// as plain text.
func RecomputeMentions(text string, users []types.User, ids IDSource) []types.Mention {
	matches := mentionRe.FindAllStringSubmatchIndex(text, -1)
	mentions := make([]types.Mention, 0, len(matches))
	for _, match := range matches {
		if len(match) < 4 {
			continue
		}
		user, ok := findUserByFullName(users, text[match[2]:match[3]])
		if !ok {
			continue
		}
		token := text[match[0]:match[1]]
		start := runeOffset(text, match[0])
		var id int64
		if ids != nil {
			id = ids()
		}
		mentions = append(mentions, types.Mention{
			ID:     id,
			Start:  start,
			End:    start + utf8.RuneCountInString(token),
			UserID: user.ID,
			Text:   token,
		})
	}
	return mentions
}

// FindComposingToken looks for an in-progress "@First" or "@First Last" token
// ending exactly at cursor. The token must open the text or follow a space.
// It returns the rune offset of the "@" and the name typed so far.
func FindComposingToken(text string, cursor int) (int, string, bool) {
	cursor = clampCursor(text, cursor)
	head := text[:byteOffset(text, cursor)]
	match := composingRe.FindStringSubmatchIndex(head)
	if match == nil {
		return 0, "", false
	}
	if match[0] > 0 && head[match[0]-1] != ' ' {
		return 0, "", false
	}
	return runeOffset(head, match[0]), head[match[2]:match[3]], true
}

// IsMentionComplete reports whether a mention text has both a first and a
// last name. It only drives display styling.
func IsMentionComplete(text string) bool {
	parts := strings.Split(strings.TrimPrefix(text, "@"), " ")
	return len(parts) >= 2 && parts[0] != "" && parts[1] != ""
}

// Segment is a run of text that is either plain or a single mention.
type Segment struct {
	Text     string
	Mention  *types.Mention
	Complete bool
}

// SplitSegments cuts text into plain and mention segments in textual order.
// Mentions that are out of range or overlap an earlier one are rendered as
// plain text.
func SplitSegments(text string, mentions []types.Mention) []Segment {
	total := utf8.RuneCountInString(text)
	segments := make([]Segment, 0, len(mentions)*2+1)
	last := 0
	for i := range mentions {
		mention := mentions[i]
		if mention.Start < last || mention.Start >= mention.End || mention.End > total {
			continue
		}
		if mention.Start > last {
			segments = append(segments, Segment{Text: runeSlice(text, last, mention.Start)})
		}
		body := runeSlice(text, mention.Start, mention.End)
		segments = append(segments, Segment{
			Text:     body,
			Mention:  &mentions[i],
			Complete: IsMentionComplete(body),
		})
		last = mention.End
	}
	if last < total {
		segments = append(segments, Segment{Text: runeSlice(text, last, total)})
	}
	return segments
}

func findUserByFullName(users []types.User, fullName string) (types.User, bool) {
	target := foldName(fullName)
	for _, user := range users {
		if foldName(user.FullName()) == target {
			return user, true
		}
	}
	return types.User{}, false
}

func foldName(value string) string {
	return cases.Fold().String(value)
}

func clampCursor(text string, cursor int) int {
	if cursor < 0 {
		return 0
	}
	if total := utf8.RuneCountInString(text); cursor > total {
		return total
	}
	return cursor
}

// runeOffset converts a byte offset into a rune offset.
func runeOffset(text string, byteOff int) int {
	return utf8.RuneCountInString(text[:byteOff])
}

// byteOffset converts a rune offset into a byte offset, clamped to len(text).
func byteOffset(text string, runeOff int) int {
	if runeOff <= 0 {
		return 0
	}
	count := 0
	for i := range text {
		if count == runeOff {
			return i
		}
		count++
	}
	return len(text)
}

func runeSlice(text string, start, end int) string {
	return text[byteOffset(text, start):byteOffset(text, end)]
}

func runeLen(text string) int {
	return utf8.RuneCountInString(text)
}
