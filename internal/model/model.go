// Package model holds the persistence-facing data shapes shared by the
// repository and service layers.
package model

import (
	"encoding/json"
	"time"
)

// Language is a source or target language known to the engine. Unique by Code.
type Language struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Status tags a draft-meta segment. It is a closed set, never a free-form string.
type Status int

const (
	Untranslated Status = iota
	Suggestion
	Confirmed
)

func (s Status) String() string {
	switch s {
	case Untranslated:
		return "untranslated"
	case Suggestion:
		return "suggestion"
	case Confirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// ParseStatus parses the wire/DB representation of a Status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "untranslated":
		return Untranslated, true
	case "suggestion":
		return Suggestion, true
	case "confirmed":
		return Confirmed, true
	default:
		return Untranslated, false
	}
}

// MarshalJSON renders Status as its string tag, so draftMeta round-trips
// through the JSON-typed DB column the way spec.md §6 requires.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	parsed, ok := ParseStatus(raw)
	if !ok {
		parsed = Untranslated
	}
	*s = parsed
	return nil
}

// Range is a half-open byte offset range [Start, End) into a string.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Len() int { return r.End - r.Start }

// Segment is one entry of a Sentence's draftMeta: it maps a source byte
// range to a draft byte range under a translation Status. See spec.md §3.
type Segment struct {
	Src    Range  `json:"src"`
	Dst    Range  `json:"dst"`
	Status Status `json:"status"`
}

// Meta is the ordered, contiguous segmentation of a (sentence, draft) pair.
type Meta []Segment

// FreshMeta returns the single-segment untranslated meta for a sentence of
// length n, the state every new Sentence starts in (spec.md §3).
func FreshMeta(n int) Meta {
	return Meta{{Src: Range{0, n}, Dst: Range{0, n}, Status: Untranslated}}
}

// Sentence is a single source-language verse/line together with its
// evolving draft translation and segmentation. SentenceID for Bible content
// encodes book*1_000_000 + chapter*1_000 + verse (spec.md §3).
type Sentence struct {
	SentenceID  int64  `json:"sentenceId"`
	SurrogateID string `json:"surrogateId"`
	ProjectID   int    `json:"projectId"`
	Sentence    string `json:"sentence"`
	Draft       string `json:"draft"`
	DraftMeta   Meta   `json:"draftMeta"`
	Version     int    `json:"version"`
}

// BibleSentenceIDRange bounds valid Bible sentenceIds (spec.md §3, §6).
const (
	MinBibleSentenceID int64 = 1_001_001
	MaxBibleSentenceID int64 = 66_999_999
)

// TranslationWeight is the stored frequency for one observed translation of
// a token, as kept in a TranslationMemoryRow.
type TranslationWeight struct {
	Frequency uint64 `json:"frequency"`
}

// TranslationMemoryRow is keyed by (SrcLang, TrgLang, Token); a row with
// TrgLang == "" carries cross-target metadata only (spec.md §3).
type TranslationMemoryRow struct {
	ID           int                          `json:"id"`
	SrcLang      string                       `json:"srcLang"`
	TrgLang      string                       `json:"trgLang"`
	Token        string                       `json:"token"`
	Translations map[string]TranslationWeight `json:"translations"`
	MetaData     map[string]any               `json:"metaData"`
}

// Stopwords splits a language's function words into the two halves the
// tokenizer's phrase builder needs (spec.md §3, §4.1).
type Stopwords struct {
	Prepositions  map[string]struct{} `json:"-"`
	Postpositions map[string]struct{} `json:"-"`
}

// IsPreposition reports whether w is a preposition stopword.
func (s Stopwords) IsPreposition(w string) bool {
	_, ok := s.Prepositions[w]
	return ok
}

// IsPostposition reports whether w is a postposition stopword.
func (s Stopwords) IsPostposition(w string) bool {
	_, ok := s.Postpositions[w]
	return ok
}

// IsStopword reports whether w is in either half of the stopword set.
func (s Stopwords) IsStopword(w string) bool {
	return s.IsPreposition(w) || s.IsPostposition(w)
}

// NewStopwords builds a Stopwords from plain slices, the shape a project's
// metaData or a CLI flag would carry.
func NewStopwords(prepositions, postpositions []string) Stopwords {
	sw := Stopwords{
		Prepositions:  make(map[string]struct{}, len(prepositions)),
		Postpositions: make(map[string]struct{}, len(postpositions)),
	}
	for _, w := range prepositions {
		sw.Prepositions[w] = struct{}{}
	}
	for _, w := range postpositions {
		sw.Postpositions[w] = struct{}{}
	}
	return sw
}

// ProjectMeta is a project's dynamic configuration bag, modeled as an
// explicit struct rather than an open map (spec.md §9's "dynamic named
// options" guidance).
type ProjectMeta struct {
	Books              []string  `json:"books"`
	Stopwords          Stopwords `json:"-"`
	Punctuations       []rune    `json:"punctuations"`
	UseDataForLearning bool      `json:"useDataForLearning"`
}

// projectMetaWire is ProjectMeta's on-the-wire/DB shape: Stopwords' two
// sets round-trip as plain string slices instead of the in-memory maps.
type projectMetaWire struct {
	Books              []string `json:"books"`
	Prepositions       []string `json:"prepositions"`
	Postpositions      []string `json:"postpositions"`
	Punctuations       []rune   `json:"punctuations"`
	UseDataForLearning bool     `json:"useDataForLearning"`
}

func (p ProjectMeta) MarshalJSON() ([]byte, error) {
	wire := projectMetaWire{
		Books:              p.Books,
		Punctuations:       p.Punctuations,
		UseDataForLearning: p.UseDataForLearning,
	}
	for w := range p.Stopwords.Prepositions {
		wire.Prepositions = append(wire.Prepositions, w)
	}
	for w := range p.Stopwords.Postpositions {
		wire.Postpositions = append(wire.Postpositions, w)
	}
	return json.Marshal(wire)
}

func (p *ProjectMeta) UnmarshalJSON(b []byte) error {
	var wire projectMetaWire
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	p.Books = wire.Books
	p.Punctuations = wire.Punctuations
	p.UseDataForLearning = wire.UseDataForLearning
	p.Stopwords = NewStopwords(wire.Prepositions, wire.Postpositions)
	return nil
}

// Project owns zero or more Sentences and scopes them to a source/target
// language pair (spec.md §3).
type Project struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	SrcLang   string      `json:"srcLang"`
	TrgLang   string      `json:"trgLang"`
	MetaData  ProjectMeta `json:"metaData"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ProjectUser is a (project, user) membership row with a role, carried
// narrowly per SPEC_FULL.md — user/auth management itself is out of scope.
type ProjectUser struct {
	ProjectID int    `json:"projectId"`
	UserID    int    `json:"userId"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
}

// SourceRecord is the {book, chapter, verse, text} shape an external USFM/CSV
// parser is assumed to produce (spec.md §1, out of scope here).
type SourceRecord struct {
	BookCode string
	Chapter  int
	Verse    int
	Text     string
}
