package binding

import (
	"fmt"

	"github.com/five82/thwip/internal/cards"
	"github.com/five82/thwip/internal/catalog"
)

// ScreenKind selects which of the mutually exclusive outputs a view shows.
type ScreenKind int

const (
	ScreenPlaceholder ScreenKind = iota
	ScreenEmpty
	ScreenGrid
	ScreenError
)

func (k ScreenKind) String() string {
	switch k {
	case ScreenPlaceholder:
		return "placeholder"
	case ScreenEmpty:
		return "empty"
	case ScreenGrid:
		return "grid"
	case ScreenError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	// EmptyMessage is shown for a successfully loaded empty collection.
	EmptyMessage = "Nothing to show"
	// LoadingMessage accompanies the placeholder.
	LoadingMessage = "Loading..."
)

// Screen is what a surface should draw for a view right now. Exactly one
// of Message or Cards is meaningful, depending on Kind.
type Screen struct {
	Kind    ScreenKind
	Message string
	Cards   []cards.Card
	Err     *catalog.FetchError
}

// ErrorMessage renders a user facing line for a fetch failure.
func ErrorMessage(err *catalog.FetchError) string {
	if err == nil {
		return "Something went wrong."
	}
	switch err.Kind {
	case catalog.HTTPError:
		return fmt.Sprintf("The catalogue returned an error (HTTP %d).", err.Status)
	case catalog.ParseError:
		return "The catalogue sent a response that could not be read."
	default:
		return "Could not reach the catalogue."
	}
}

func placeholderScreen() Screen {
	return Screen{Kind: ScreenPlaceholder, Message: LoadingMessage}
}

func errorScreen(err *catalog.FetchError) Screen {
	return Screen{Kind: ScreenError, Message: ErrorMessage(err), Err: err}
}
