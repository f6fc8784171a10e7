// Package change defines the Change entry sum type attached to a file path
// in a commit or the staging index (spec §3, §9 "Tagged variants").
//
// On disk a Change is an object with a "type" field, except Ops, which is
// serialized as a bare JSON array of operations — matching the reference
// layout so existing `.art/` trees written by earlier implementations of
// this format stay readable.
package change

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Kind discriminates the three Change variants.
type Kind string

const (
	KindCreate Kind = "create"
	KindDelete Kind = "delete"
	KindOps    Kind = "ops"
)

// OpKind discriminates the two Op variants inside an Ops change.
type OpKind string

const (
	OpInsert OpKind = "insert"
	OpDelete OpKind = "delete"
)

// Op is a single character-offset edit. Insert carries Content; Delete
// carries Length. Position is always a byte offset into the prior content
// (spec §4.2, §9 "Position semantics" — UTF-8 byte offsets).
type Op struct {
	Type     OpKind `json:"type"`
	Position int    `json:"position"`
	Content  string `json:"content,omitempty"`
	Length   int    `json:"length,omitempty"`
}

// Change is one path's change entry: exactly one of Create, Delete, Ops is set.
type Change struct {
	Create *CreateFile
	Delete bool
	Ops    []Op
}

// CreateFile records that the file did not exist in the prior state.
// Content always holds the file's raw bytes (as a string); when Binary is
// true, MarshalJSON base64-encodes Content for the wire and UnmarshalJSON
// decodes it back, so non-UTF-8 bytes survive a round trip through JSON
// (spec §3's CreateFile.content is `string | base64`).
type CreateFile struct {
	Content string
	Binary  bool
}

// Variant returns the Change's discriminant.
func (c Change) Variant() Kind {
	switch {
	case c.Create != nil:
		return KindCreate
	case c.Delete:
		return KindDelete
	default:
		return KindOps
	}
}

// NewCreate builds a Change of the Create variant.
func NewCreate(content string, binary bool) Change {
	return Change{Create: &CreateFile{Content: content, Binary: binary}}
}

// NewDelete builds a Change of the Delete variant.
func NewDelete() Change {
	return Change{Delete: true}
}

// NewOps builds a Change of the Ops variant. A nil or empty ops slice is
// still a valid (no-op) Ops change; add() never emits one since the delta
// engine returns no ops for identical content.
func NewOps(ops []Op) Change {
	return Change{Ops: ops}
}

// wireCreate is the on-disk shape of a CreateFile change.
type wireCreate struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Binary  bool   `json:"binary,omitempty"`
}

// wireDelete is the on-disk shape of a DeleteFile change.
type wireDelete struct {
	Type string `json:"type"`
}

// MarshalJSON encodes Change per its variant.
func (c Change) MarshalJSON() ([]byte, error) {
	switch c.Variant() {
	case KindCreate:
		content := c.Create.Content
		if c.Create.Binary {
			content = base64.StdEncoding.EncodeToString([]byte(content))
		}
		return json.Marshal(wireCreate{Type: "create", Content: content, Binary: c.Create.Binary})
	case KindDelete:
		return json.Marshal(wireDelete{Type: "delete"})
	default:
		if c.Ops == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Ops)
	}
}

// UnmarshalJSON decodes either a bare array (Ops) or a tagged object
// (Create/Delete) into c.
func (c *Change) UnmarshalJSON(data []byte) error {
	trimmed := skipSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var ops []Op
		if err := json.Unmarshal(data, &ops); err != nil {
			return fmt.Errorf("change: decode ops: %w", err)
		}
		*c = Change{Ops: ops}
		return nil
	}

	var tagged struct {
		Type    string `json:"type"`
		Content string `json:"content"`
		Binary  bool   `json:"binary"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("change: decode tagged: %w", err)
	}
	switch Kind(tagged.Type) {
	case KindCreate:
		content := tagged.Content
		if tagged.Binary {
			raw, err := base64.StdEncoding.DecodeString(tagged.Content)
			if err != nil {
				return fmt.Errorf("change: decode base64 content: %w", err)
			}
			content = string(raw)
		}
		*c = Change{Create: &CreateFile{Content: content, Binary: tagged.Binary}}
	case KindDelete:
		*c = Change{Delete: true}
	default:
		return fmt.Errorf("change: unknown type %q", tagged.Type)
	}
	return nil
}

func skipSpace(b []byte) []byte {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n' || b[i] == '\r') {
		i++
	}
	return b[i:]
}
