// internal/features/encoder.go
package features

import (
	"fmt"
	"sort"
)

// EncodingError reports a label or code outside an encoder's vocabulary.
type EncodingError struct {
	Feature string
	Label   string
	Code    int
	decode  bool
}

func (e *EncodingError) Error() string {
	if e.decode {
		return fmt.Sprintf("feature %s: code %d is outside the trained vocabulary", e.Feature, e.Code)
	}
	return fmt.Sprintf("feature %s: label %q is outside the trained vocabulary", e.Feature, e.Label)
}

// Encoder maps labels to integer codes. Codes are the label's index in the
// sorted class list, which is how the training pipeline assigned them.
type Encoder struct {
	feature string
	classes []string
	codes   map[string]int
}

func NewEncoder(feature string, labels []string) (*Encoder, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("feature %s: empty vocabulary", feature)
	}

	classes := append([]string(nil), labels...)
	sort.Strings(classes)

	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := codes[c]; dup {
			return nil, fmt.Errorf("feature %s: duplicate label %q", feature, c)
		}
		codes[c] = i
	}

	return &Encoder{feature: feature, classes: classes, codes: codes}, nil
}

func (e *Encoder) Feature() string { return e.feature }

// Classes returns the vocabulary in code order.
func (e *Encoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

func (e *Encoder) Encode(label string) (int, error) {
	code, ok := e.codes[label]
	if !ok {
		return 0, &EncodingError{Feature: e.feature, Label: label}
	}
	return code, nil
}

func (e *Encoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", &EncodingError{Feature: e.feature, Code: code, decode: true}
	}
	return e.classes[code], nil
}
