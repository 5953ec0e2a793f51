package renderer

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ElementKey identifies a region or control in the presentation document.
type ElementKey string

const (
	KeyInfo         ElementKey = "info"
	KeySyncTabs     ElementKey = "syncTabs"
	KeyOpenTabs     ElementKey = "openTabs"
	KeyViewTabs     ElementKey = "viewTabs"
	KeyStatus       ElementKey = "status"
	KeyServerURL    ElementKey = "serverUrl"
	KeySaveSettings ElementKey = "saveSettings"
)

// ControlKeys are the controls acquired alongside the info region. None of them
// has behavior attached.
var ControlKeys = []ElementKey{
	KeySyncTabs,
	KeyOpenTabs,
	KeyViewTabs,
	KeyStatus,
	KeyServerURL,
	KeySaveSettings,
}

// AllKeys returns the info region key followed by ControlKeys.
func AllKeys() []ElementKey {
	return append([]ElementKey{KeyInfo}, ControlKeys...)
}

// Element is a handle to one region or control.
type Element interface {
	SetText(text string)
	Text() string
}

// Document resolves element keys to handles.
type Document interface {
	Element(key ElementKey) (Element, bool)
}

// Controls holds every handle the presentation layer needs.
type Controls struct {
	Info         Element
	SyncTabs     Element
	OpenTabs     Element
	ViewTabs     Element
	Status       Element
	ServerURL    Element
	SaveSettings Element
}

// MissingElementError reports a key that the document could not resolve.
type MissingElementError struct {
	Key ElementKey
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("element %q not found", string(e.Key))
}

// Acquire resolves every key in doc. All missing keys are reported together.
func Acquire(doc Document) (*Controls, error) {
	if doc == nil {
		return nil, errors.New("no document to acquire elements from")
	}

	var merr *multierror.Error
	get := func(key ElementKey) Element {
		el, ok := doc.Element(key)
		if !ok || el == nil {
			merr = multierror.Append(merr, &MissingElementError{Key: key})
			return nil
		}
		return el
	}

	c := &Controls{
		Info:         get(KeyInfo),
		SyncTabs:     get(KeySyncTabs),
		OpenTabs:     get(KeyOpenTabs),
		ViewTabs:     get(KeyViewTabs),
		Status:       get(KeyStatus),
		ServerURL:    get(KeyServerURL),
		SaveSettings: get(KeySaveSettings),
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}
