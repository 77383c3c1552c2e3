package naming

import (
	"unicode"

	"github.com/Masterminds/semver/v3"

	"github.com/matsim-eth/python-matsim/errors"
)

// EscapeMarker is appended to a member name that collides with a reserved word.
const EscapeMarker = "_"

// DefaultRuntimeVersion is the binding runtime the generated code targets
// when none is configured.
const DefaultRuntimeVersion = "0.7.5"

// KeywordSet is the reserved-word list of one binding-runtime release line.
// The runtime renames members in exactly this set, so the generator must use
// the same list or stubs and bindings stop matching the live objects.
type KeywordSet struct {
	Name       string
	Constraint string
	words      map[string]bool
}

// Reserved reports whether name collides with the set.
func (k *KeywordSet) Reserved(name string) bool {
	return k.words[name]
}

// Escape returns name with EscapeMarker appended when it is reserved.
func (k *KeywordSet) Escape(name string) string {
	if k.Reserved(name) {
		return name + EscapeMarker
	}
	return name
}

// Words returns the number of reserved words in the set.
func (k *KeywordSet) Words() int {
	return len(k.words)
}

func newKeywordSet(name, constraint string, words ...string) *KeywordSet {
	set := &KeywordSet{Name: name, Constraint: constraint, words: make(map[string]bool, len(words))}
	for _, w := range words {
		set.words[w] = true
	}
	return set
}

// pythonKeywords are the hard keywords of the target language. No
// identifier may equal one of them, whatever the runtime renames.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

var keywordSets = []*KeywordSet{
	newKeywordSet("jpype-0.7", "< 1.0.0",
		"del", "for", "is", "raise",
		"assert", "elif", "from", "lambda", "return",
		"break", "else", "global", "not", "try",
		"class", "except", "if", "or", "while",
		"continue", "exec", "import", "pass", "yield",
		"def", "finally", "in", "print", "as", "None",
		"wait",
	),
	newKeywordSet("jpype-1", ">= 1.0.0",
		"False", "None", "True", "and", "as", "assert", "async", "await",
		"break", "class", "continue", "def", "del", "elif", "else", "except",
		"exec", "finally", "for", "from", "global", "if", "import", "in",
		"is", "lambda", "nonlocal", "not", "or", "pass", "print", "raise",
		"return", "try", "wait", "while", "with", "yield",
	),
}

// KeywordsFor selects the keyword set whose constraint admits runtimeVersion.
// An empty version selects DefaultRuntimeVersion.
func KeywordsFor(runtimeVersion string) (*KeywordSet, error) {
	if runtimeVersion == "" {
		runtimeVersion = DefaultRuntimeVersion
	}
	v, err := semver.NewVersion(runtimeVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid binding runtime version %s", runtimeVersion)
	}

	for _, set := range keywordSets {
		constraint, err := semver.NewConstraint(set.Constraint)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid constraint %s for keyword set %s", set.Constraint, set.Name)
		}
		if constraint.Check(v) {
			return set, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "no keyword set for binding runtime %s", runtimeVersion)
}

// DefaultKeywords is the set for DefaultRuntimeVersion.
func DefaultKeywords() *KeywordSet {
	set, err := KeywordsFor(DefaultRuntimeVersion)
	if err != nil {
		panic(err)
	}
	return set
}

// IsHardKeyword reports whether s is a hard keyword of the target language.
func IsHardKeyword(s string) bool {
	return pythonKeywords[s]
}

// IsIdentifier reports whether s is a legal target-language identifier that
// is not a hard keyword.
func IsIdentifier(s string) bool {
	if s == "" || pythonKeywords[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
