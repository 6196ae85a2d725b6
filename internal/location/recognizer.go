package location

import (
	"context"
	"time"
)

// DefaultRecognizerTimeout bounds a single recognizer call. A slow or
// hanging recognizer degrades extraction to heuristics-only mode instead
// of blocking it.
const DefaultRecognizerTimeout = 2 * time.Second

// Entities is the advisory output of an external place-name recognizer.
// It can promote or demote ambiguous tokens but is never authoritative.
type Entities struct {
	Cities    []string `json:"cities"`
	Countries []string `json:"countries"`
}

// Recognizer is an optional, swappable place-entity recognition
// capability. Implementations may call external services and are allowed
// to be slow or erroring; the normalizer absorbs both.
type Recognizer interface {
	Entities(ctx context.Context, text, lang string) (Entities, error)
}

// lookupEntities calls the recognizer with a bounded timeout. Any error,
// timeout, or panic yields empty entities; degraded capability is not an
// error condition.
func (n *Normalizer) lookupEntities(ctx context.Context, text string) Entities {
	if n == nil || n.Recognizer == nil {
		return Entities{}
	}
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = DefaultRecognizerTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan Entities, 1)
	go func() {
		defer func() {
			if recover() != nil {
				done <- Entities{}
			}
		}()
		ents, err := n.Recognizer.Entities(ctx, text, n.Lang)
		if err != nil {
			ents = Entities{}
		}
		done <- ents
	}()

	select {
	case ents := <-done:
		return ents
	case <-ctx.Done():
		return Entities{}
	}
}

func (e Entities) hasCity(token string) bool {
	return containsFold(e.Cities, token)
}

func (e Entities) hasCountry(token string) bool {
	return containsFold(e.Countries, token)
}
