package apierrors

import (
	"fmt"
	"sync"

	"github.com/danielgtaylor/casing"
)

// Handler inspects an error and either produces the complete payload for it
// or declines. Handlers must be pure: no side effects, same output for the
// same input. The first handler in the chain that accepts wins; results are
// never merged across handlers.
type Handler func(err error) (*ErrorPayload, bool)

var (
	registryMu sync.Mutex
	registry   = map[string]Handler{}
)

// RegisterHandler adds a named handler to the process-wide registry so it
// can be referenced from the extra_handlers configuration list. Names are
// normalized to snake_case, so "NotImplemented" and "not_implemented" refer
// to the same entry. Registration is expected at init time; registering the
// same name twice panics, as that is a programming error.
func RegisterHandler(name string, h Handler) {
	key := casing.Snake(name)

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[key]; ok {
		panic(fmt.Sprintf("apierrors: handler %q already registered", key))
	}
	registry[key] = h
}

// resolveHandlers maps configured handler names to registered handlers. An
// unknown name is an operator misconfiguration and is reported as an error
// so callers can fail at startup rather than at request time.
func resolveHandlers(names []string) ([]Handler, error) {
	if len(names) == 0 {
		return nil, nil
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	handlers := make([]Handler, 0, len(names))
	for _, name := range names {
		h, ok := registry[casing.Snake(name)]
		if !ok {
			return nil, fmt.Errorf("apierrors: unknown extra handler %q", name)
		}
		handlers = append(handlers, h)
	}
	return handlers, nil
}
