package extract

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Tokenize reads an HTML document and calls fn for every event in document
// order. Self-closing tags produce an open event followed by a close event.
// Comments and doctypes are skipped.
func Tokenize(r io.Reader, fn func(Event)) error {
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return fmt.Errorf("tokenize: %w", err)
			}
			return nil
		case html.TextToken:
			fn(Text(string(z.Text())))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			var attrs []Attr
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				attrs = append(attrs, Attr{Key: string(key), Val: string(val)})
			}
			tag := string(name)
			fn(Open(tag, attrs...))
			if tt == html.SelfClosingTagToken {
				fn(Close(tag))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			fn(Close(string(name)))
		}
	}
}

// Parse extracts a batch from an HTML document and checks its alignment.
// The batch is returned even when Check fails so callers can log what was
// captured.
func Parse(r io.Reader, layout Layout) (*Batch, error) {
	ex := New(layout)
	if err := Tokenize(r, ex.Handle); err != nil {
		return nil, err
	}
	batch := ex.Batch()
	if err := batch.Check(); err != nil {
		return batch, err
	}
	return batch, nil
}
