// Package state holds the note board state and its pure transition function.
//
// Reduce never performs I/O. Remote work is described by the returned
// effects, which the board runtime executes outside of its lock.
package state

import (
	"errors"
	"slices"

	"noteboard/internal/board/domain/entities"
)

// ErrUnknownField is returned for a field change that targets no form field.
var ErrUnknownField = errors.New("unknown form field")

// Field names a text input of the form.
type Field string

// Form fields.
const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
)

// ParseField validates a field name coming from the outside.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldName, FieldDescription:
		return Field(s), nil
	default:
		return "", ErrUnknownField
	}
}

// State is the displayed note list plus the form. Loaded reports whether a
// list has ever been committed.
type State struct {
	Notes  []entities.Note
	Form   entities.FormState
	Loaded bool
}

// Clone returns a copy that shares no slice memory with s.
func (s State) Clone() State {
	return State{Notes: slices.Clone(s.Notes), Form: s.Form, Loaded: s.Loaded}
}

// Event is an input to Reduce.
type Event interface{ isEvent() }

// Initialized fires once when the board starts.
type Initialized struct{}

// NotesLoaded carries a fully resolved note list.
type NotesLoaded struct{ Notes []entities.Note }

// FieldChanged mirrors user input into the form.
type FieldChanged struct {
	Field Field
	Value string
}

// ImageSelected records the filename of a picked file.
type ImageSelected struct{ Filename string }

// CreateRequested asks to submit the form.
type CreateRequested struct{}

// CreateSucceeded is emitted after the record store accepted the note.
type CreateSucceeded struct{}

// DeleteRequested asks to remove a note.
type DeleteRequested struct{ ID string }

func (Initialized) isEvent()     {}
func (NotesLoaded) isEvent()     {}
func (FieldChanged) isEvent()    {}
func (ImageSelected) isEvent()   {}
func (CreateRequested) isEvent() {}
func (CreateSucceeded) isEvent() {}
func (DeleteRequested) isEvent() {}

// Effect is remote work requested by a transition.
type Effect interface{ isEffect() }

// Refresh refetches the note list and resolves images.
type Refresh struct{}

// UploadImage stores the selected file under Key.
type UploadImage struct{ Key string }

// SubmitNote creates a note from Input.
type SubmitNote struct{ Input entities.NoteInput }

// RemoveNote deletes the note with ID from the record store.
type RemoveNote struct{ ID string }

func (Refresh) isEffect()     {}
func (UploadImage) isEffect() {}
func (SubmitNote) isEffect()  {}
func (RemoveNote) isEffect()  {}

// Reduce applies ev to s. The input state is not modified.
func Reduce(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Initialized:
		return s, []Effect{Refresh{}}

	case NotesLoaded:
		s.Notes = slices.Clone(e.Notes)
		s.Loaded = true
		return s, nil

	case FieldChanged:
		switch e.Field {
		case FieldName:
			s.Form.Name = e.Value
		case FieldDescription:
			s.Form.Description = e.Value
		}
		return s, nil

	case ImageSelected:
		if e.Filename == "" {
			return s, nil
		}
		s.Form.ImageKey = e.Filename
		return s, []Effect{UploadImage{Key: e.Filename}}

	case CreateRequested:
		if !s.Form.Ready() {
			return s, nil
		}
		return s, []Effect{SubmitNote{Input: s.Form.Input()}}

	case CreateSucceeded:
		s.Form = entities.FormState{}
		return s, []Effect{Refresh{}}

	case DeleteRequested:
		s.Notes = slices.DeleteFunc(slices.Clone(s.Notes), func(n entities.Note) bool {
			return n.ID == e.ID
		})
		return s, []Effect{RemoveNote{ID: e.ID}}

	default:
		return s, nil
	}
}
