package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	ferrors "github.com/modforge-labs/modforge/internal/errors"
)

const indent = "    "

// Document is a plugin manifest held in memory between one read and one write.
type Document struct {
	root *Object
	src  []byte
}

// Load reads the manifest at path and checks it against the manifest schema.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NotFoundError(fmt.Sprintf("plugin manifest not found: %s", path)).
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.FileSystemError(err, fmt.Sprintf("reading plugin manifest %s", path)).Build()
	}

	result, err := Validate(data)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySchema, fmt.Sprintf("checking plugin manifest %s", path)).
			WithContext("path", path).
			Build()
	}
	if !result.Valid {
		return nil, ferrors.SchemaError(fmt.Sprintf("plugin manifest %s is invalid: %s", path, result.Summary())).
			WithContext("path", path).
			Build()
	}

	return Parse(data)
}

// Parse decodes manifest JSON. It does not apply the schema; Upsert still
// rejects a non-array Modules field.
func Parse(data []byte) (*Document, error) {
	root := NewObject()
	if err := json.Unmarshal(data, root); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySchema, "plugin manifest is not a JSON object").Build()
	}
	return &Document{root: root, src: data}, nil
}

// Root returns the top-level manifest object.
func (d *Document) Root() *Object { return d.root }

// Source returns the bytes the document was parsed from.
func (d *Document) Source() []byte { return d.src }

// Changed reports whether rendering the document would differ from its source.
func (d *Document) Changed() (bool, error) {
	out, err := d.Bytes()
	if err != nil {
		return false, err
	}
	return !bytes.Equal(d.src, out), nil
}

// Bytes renders the manifest with four-space indentation and a trailing newline.
func (d *Document) Bytes() ([]byte, error) {
	compact, err := d.root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Save writes the manifest to path, replacing its contents.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "rendering plugin manifest").Build()
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ferrors.FileSystemError(err, fmt.Sprintf("writing plugin manifest %s", path)).
			WithContext("path", path).
			Build()
	}
	return nil
}

// moduleItem is one element of the Modules array. obj is nil for elements
// that are not JSON objects; they are carried through unchanged.
type moduleItem struct {
	obj *Object
	raw json.RawMessage
}

func (m moduleItem) name() string {
	if m.obj == nil {
		return ""
	}
	name, _ := m.obj.String(KeyName)
	return name
}

func (m moduleItem) indexable() bool {
	if m.obj == nil {
		return false
	}
	_, ok := m.obj.String(KeyName)
	return ok
}

// modules decodes the Modules array. A missing key reads as empty.
func (d *Document) modules() ([]moduleItem, error) {
	raw, ok := d.root.Raw(KeyModules)
	if !ok {
		return nil, nil
	}

	var elems []json.RawMessage
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ferrors.SchemaError(fmt.Sprintf("manifest %q must be an array", KeyModules)).Build()
	}
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySchema, fmt.Sprintf("decoding manifest %q", KeyModules)).Build()
	}

	items := make([]moduleItem, 0, len(elems))
	for _, elem := range elems {
		item := moduleItem{raw: elem}
		if t := bytes.TrimSpace(elem); len(t) > 0 && t[0] == '{' {
			obj := NewObject()
			if err := json.Unmarshal(t, obj); err != nil {
				return nil, ferrors.WrapError(err, ferrors.CategorySchema, fmt.Sprintf("decoding manifest %q entry", KeyModules)).Build()
			}
			item.obj = obj
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *Document) setModules(items []moduleItem) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if item.obj == nil {
			buf.Write(item.raw)
			continue
		}
		data, err := item.obj.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	d.root.SetRaw(KeyModules, buf.Bytes())
	return nil
}

// ModuleNames returns the Name of every Modules entry in document order.
// Entries without a string Name are reported as "".
func (d *Document) ModuleNames() ([]string, error) {
	items, err := d.modules()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.name()
	}
	return names, nil
}

// Module returns the first Modules entry with the given name.
func (d *Document) Module(name string) (*Object, bool, error) {
	items, err := d.modules()
	if err != nil {
		return nil, false, err
	}
	for _, item := range items {
		if item.indexable() && item.name() == name {
			return item.obj, true, nil
		}
	}
	return nil, false, nil
}

// Summary joins the validation issues into one line.
func (r *ValidationResult) Summary() string {
	msgs := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}
