package outline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Result is the persisted structural summary of one document.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// WriteJSON emits {"title", "outline"} with 2-space indentation. HTML
// escaping is disabled so non-ASCII text and punctuation survive verbatim.
func WriteJSON(w io.Writer, title string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Result{Title: title, Outline: entries}); err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	return nil
}

// WriteJSONFile writes the outline JSON to path, creating or truncating
// the file.
func WriteJSONFile(path, title string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, title, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
