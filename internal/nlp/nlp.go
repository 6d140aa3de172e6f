// Package nlp provides HTTP clients for the two external model
// collaborators: the token-classification model that tags skill spans and
// the sentence-embedding model that scores semantic similarity. Both run
// behind an inference sidecar; this package only speaks its JSON API.
package nlp

import "errors"

// ErrUnavailable marks any failure to reach or get a usable answer from the
// inference sidecar. Callers map it to a distinct "collaborator unavailable"
// response instead of emitting guessed scores.
var ErrUnavailable = errors.New("nlp service unavailable")
