package domain

import "strings"

// Group ID delimiters. A name carries at most one live field between
// DelimiterOpen and DelimiterClose; the escaped forms survive one apply
// pass and become live delimiters afterwards.
const (
	DelimiterOpen         = `[[`
	DelimiterClose        = `]]`
	DelimiterEscapedOpen  = `[\[`
	DelimiterEscapedClose = `]\]`
)

// ValidateGroupID rejects ids that are empty or contain a delimiter.
func ValidateGroupID(id string) error {
	switch {
	case strings.Contains(id, DelimiterOpen):
		return &GroupIDError{GroupID: id, Kind: GroupIDContainsOpen}
	case strings.Contains(id, DelimiterClose):
		return &GroupIDError{GroupID: id, Kind: GroupIDContainsClose}
	case id == "":
		return &GroupIDError{Kind: GroupIDEmpty}
	}
	return nil
}

// GroupID extracts the text between the first opening and last closing delimiter.
func GroupID(name string) (string, bool) {
	_, rest, ok := strings.Cut(name, DelimiterOpen)
	if !ok {
		return "", false
	}
	i := strings.LastIndex(rest, DelimiterClose)
	if i < 0 {
		return "", false
	}
	return rest[:i], true
}

// ReplaceGroupID rewrites the group id field of name. Names without exactly
// one opening and one closing delimiter are returned unchanged with false.
func ReplaceGroupID(name, id string) (string, bool) {
	if strings.Count(name, DelimiterOpen) != 1 || strings.Count(name, DelimiterClose) != 1 {
		return name, false
	}
	pre, rest, _ := strings.Cut(name, DelimiterOpen)
	_, post, ok := strings.Cut(rest, DelimiterClose)
	if !ok {
		return name, false
	}
	return pre + DelimiterOpen + id + DelimiterClose + post, true
}

// HasDelimiters reports whether name contains any live delimiter.
func HasDelimiters(name string) bool {
	return strings.Contains(name, DelimiterOpen) || strings.Contains(name, DelimiterClose)
}

// TagGroupID is the rename used for links and joints: the field is rewritten
// when present, and appended as "_[[id]]" when the name has no delimiter.
func TagGroupID(name, id string) string {
	if renamed, ok := ReplaceGroupID(name, id); ok {
		return renamed
	}
	if HasDelimiters(name) {
		return name
	}
	return name + "_" + DelimiterOpen + id + DelimiterClose
}

// DisplayName strips live delimiters and unescapes escaped ones. It is both
// the human readable form of a name and the result of applying its group id.
func DisplayName(name string) string {
	r := strings.NewReplacer(DelimiterOpen, "", DelimiterClose, "")
	name = r.Replace(name)
	return strings.NewReplacer(DelimiterEscapedOpen, DelimiterOpen, DelimiterEscapedClose, DelimiterClose).Replace(name)
}
