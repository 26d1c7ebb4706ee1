package search

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// serializationVersion matches the MiniSearch JSON format understood by
// MiniSearch.loadJSON in the browser.
const serializationVersion = 2

var tokenSplit = regexp.MustCompile(`[\n\r\p{Z}\p{P}]+`)

// Tokenize splits text on whitespace, separators and punctuation and returns
// the lowercased, non-empty terms in order.
func Tokenize(text string) []string {
	parts := tokenSplit.Split(text, -1)
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		terms = append(terms, strings.ToLower(p))
	}
	return terms
}

// Options configures which document fields are tokenized and which are
// stored verbatim for display.
type Options struct {
	Fields      []string
	StoreFields []string
}

// Index is an in-memory inverted index over a fixed set of fields.
// It is not safe for concurrent mutation.
type Index struct {
	opts     Options
	fieldIDs map[string]int

	docIDs      []string         // short id -> external id
	fieldLength [][]int          // short id -> unique term count per field
	avgLength   []float64        // field id -> average field length
	stored      []map[string]any // short id -> stored fields

	// term -> field id -> short id -> term frequency
	terms map[string]map[int]map[int]int
}

// New returns an empty index for the given field layout.
func New(opts Options) *Index {
	ix := &Index{
		opts:      opts,
		fieldIDs:  make(map[string]int, len(opts.Fields)),
		avgLength: make([]float64, len(opts.Fields)),
		terms:     make(map[string]map[int]map[int]int),
	}
	for i, f := range opts.Fields {
		ix.fieldIDs[f] = i
	}
	return ix
}

// Len returns the number of documents in the index.
func (ix *Index) Len() int {
	return len(ix.docIDs)
}

// Add indexes a document. fields holds the text of the searchable fields and
// stored holds the display values; keys not named in Options are ignored.
func (ix *Index) Add(id string, fields map[string]string, stored map[string]any) {
	short := len(ix.docIDs)
	ix.docIDs = append(ix.docIDs, id)

	lengths := make([]int, len(ix.opts.Fields))
	for fieldID, name := range ix.opts.Fields {
		value, ok := fields[name]
		if !ok {
			continue
		}
		tokens := Tokenize(value)
		unique := make(map[string]struct{}, len(tokens))
		for _, term := range tokens {
			unique[term] = struct{}{}
			ix.addTerm(term, fieldID, short)
		}
		lengths[fieldID] = len(unique)

		n := float64(short + 1)
		ix.avgLength[fieldID] = (ix.avgLength[fieldID]*(n-1) + float64(len(unique))) / n
	}
	ix.fieldLength = append(ix.fieldLength, lengths)

	keep := make(map[string]any, len(ix.opts.StoreFields))
	for _, name := range ix.opts.StoreFields {
		if v, ok := stored[name]; ok && v != nil {
			keep[name] = v
		}
	}
	ix.stored = append(ix.stored, keep)
}

func (ix *Index) addTerm(term string, fieldID, short int) {
	byField, ok := ix.terms[term]
	if !ok {
		byField = make(map[int]map[int]int)
		ix.terms[term] = byField
	}
	docs, ok := byField[fieldID]
	if !ok {
		docs = make(map[int]int)
		byField[fieldID] = docs
	}
	docs[short]++
}

type serializedIndex struct {
	DocumentCount        int                       `json:"documentCount"`
	NextID               int                       `json:"nextId"`
	DocumentIDs          map[string]string         `json:"documentIds"`
	FieldIDs             map[string]int            `json:"fieldIds"`
	FieldLength          map[string][]int          `json:"fieldLength"`
	AverageFieldLength   []float64                 `json:"averageFieldLength"`
	StoredFields         map[string]map[string]any `json:"storedFields"`
	DirtCount            int                       `json:"dirtCount"`
	Index                []termEntry               `json:"index"`
	SerializationVersion int                       `json:"serializationVersion"`
}

// termEntry encodes as the two-element array [term, {fieldId: {shortId: tf}}].
type termEntry struct {
	term   string
	fields map[string]map[string]int
}

func (e termEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.term, e.fields})
}

// MarshalJSON encodes the index in the MiniSearch serialization format.
// Terms are emitted in sorted order so equal inputs give equal output.
func (ix *Index) MarshalJSON() ([]byte, error) {
	out := serializedIndex{
		DocumentCount:        len(ix.docIDs),
		NextID:               len(ix.docIDs),
		DocumentIDs:          make(map[string]string, len(ix.docIDs)),
		FieldIDs:             ix.fieldIDs,
		FieldLength:          make(map[string][]int, len(ix.docIDs)),
		AverageFieldLength:   ix.avgLength,
		StoredFields:         make(map[string]map[string]any, len(ix.docIDs)),
		Index:                make([]termEntry, 0, len(ix.terms)),
		SerializationVersion: serializationVersion,
	}
	for short, id := range ix.docIDs {
		key := strconv.Itoa(short)
		out.DocumentIDs[key] = id
		out.FieldLength[key] = ix.fieldLength[short]
		out.StoredFields[key] = ix.stored[short]
	}

	terms := make([]string, 0, len(ix.terms))
	for t := range ix.terms {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	for _, t := range terms {
		fields := make(map[string]map[string]int, len(ix.terms[t]))
		for fieldID, docs := range ix.terms[t] {
			freqs := make(map[string]int, len(docs))
			for short, tf := range docs {
				freqs[strconv.Itoa(short)] = tf
			}
			fields[strconv.Itoa(fieldID)] = freqs
		}
		out.Index = append(out.Index, termEntry{term: t, fields: fields})
	}

	return json.Marshal(out)
}
