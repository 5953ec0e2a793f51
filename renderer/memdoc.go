package renderer

import "sync"

// TextElement is an in-memory Element.
type TextElement struct {
	mu   sync.Mutex
	text string
}

func (e *TextElement) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
}

func (e *TextElement) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// MemDocument is a headless Document holding a fixed set of elements.
type MemDocument struct {
	elements map[ElementKey]*TextElement
}

// NewMemDocument creates a document containing the given keys.
func NewMemDocument(keys ...ElementKey) *MemDocument {
	d := &MemDocument{elements: make(map[ElementKey]*TextElement, len(keys))}
	for _, k := range keys {
		d.elements[k] = &TextElement{}
	}
	return d
}

func (d *MemDocument) Element(key ElementKey) (Element, bool) {
	el, ok := d.elements[key]
	if !ok {
		return nil, false
	}
	return el, true
}

// Text returns the current text of key, or "" if the key is absent.
func (d *MemDocument) Text(key ElementKey) string {
	if el, ok := d.elements[key]; ok {
		return el.Text()
	}
	return ""
}
