package bankio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/wordwise/internal/question"
)

// FormatVersion is written into every exported document. Readers accept
// any document with the same major version.
const FormatVersion = "v1.0.0"

// ErrIncompatibleVersion is returned for documents from another major
// format version.
var ErrIncompatibleVersion = errors.New("incompatible bank file version")

// Document is the YAML bank file.
type Document struct {
	FormatVersion string              `yaml:"format_version"`
	ExportedAt    time.Time           `yaml:"exported_at"`
	Questions     []question.Question `yaml:"questions"`
}

// WriteYAML writes qs as a Document stamped with now.
func WriteYAML(w io.Writer, qs []question.Question, now time.Time) error {
	doc := Document{
		FormatVersion: FormatVersion,
		ExportedAt:    now.UTC().Truncate(time.Second),
		Questions:     qs,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode bank yaml: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a Document, checks its version and normalizes the
// questions. Questions without an ID get a fresh "user_" ID. Questions are
// not validated here; the bank repository does that on insert.
func ReadYAML(r io.Reader, now time.Time) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode bank yaml: empty document")
		}
		return nil, fmt.Errorf("decode bank yaml: %w", err)
	}

	if !semver.IsValid(doc.FormatVersion) {
		return nil, fmt.Errorf("%w: %q is not a version", ErrIncompatibleVersion, doc.FormatVersion)
	}
	if semver.Major(doc.FormatVersion) != semver.Major(FormatVersion) {
		return nil, fmt.Errorf("%w: file is %s, this build reads %s.x",
			ErrIncompatibleVersion, doc.FormatVersion, semver.Major(FormatVersion))
	}

	for i, q := range doc.Questions {
		if q.ID == "" {
			q.ID = question.NewID(question.PrefixUser, now, i)
		}
		doc.Questions[i] = question.Normalize(q)
	}
	return &doc, nil
}
