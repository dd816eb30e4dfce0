package extract

import "strings"

// EventKind distinguishes the three tokenizer events.
type EventKind int

const (
	EventOpen EventKind = iota
	EventClose
	EventText
)

// Attr is a single tag attribute.
type Attr struct {
	Key string
	Val string
}

// Event is one item of the document's event stream. Name is set for open and
// close events, Attrs for open events, Data for text events.
type Event struct {
	Kind  EventKind
	Name  string
	Attrs []Attr
	Data  string
}

// Open builds an open-tag event.
func Open(name string, attrs ...Attr) Event {
	return Event{Kind: EventOpen, Name: name, Attrs: attrs}
}

// Close builds a close-tag event.
func Close(name string) Event {
	return Event{Kind: EventClose, Name: name}
}

// Text builds a text event.
func Text(data string) Event {
	return Event{Kind: EventText, Data: data}
}

// Class is shorthand for a class attribute.
func Class(value string) Attr {
	return Attr{Key: "class", Val: value}
}

func hasClass(attrs []Attr, class string) bool {
	if class == "" {
		return true
	}
	for _, a := range attrs {
		if a.Key == "class" && normalizeClass(a.Val) == class {
			return true
		}
	}
	return false
}

func normalizeClass(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
