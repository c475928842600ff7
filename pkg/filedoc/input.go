package filedoc

import "github.com/tracelabs/assetbook-backend/pkg/db/models"

// Input carries the write-side fields of a document slot: base64 payload
// plus filename, MIME type and size. A nil field means "leave unchanged";
// every slot in the API funnels through Apply so the decode path cannot
// drift between entities.
type Input struct {
	Data *string
	Name *string
	Type *string
	Size *int
}

// IsZero reports whether the input touches nothing.
func (in Input) IsZero() bool {
	return in.Data == nil && in.Name == nil && in.Type == nil && in.Size == nil
}

// Apply decodes the payload (when present) and merges the metadata fields
// onto the stored document. When new bytes arrive without an explicit size,
// the decoded length is recorded.
func (in Input) Apply(doc *models.FileDocument) error {
	if in.Data != nil {
		data, err := Decode(in.Data)
		if err != nil {
			return err
		}
		doc.Data = data
		if in.Size == nil && len(data) > 0 {
			size := len(data)
			doc.Size = &size
		}
	}
	if in.Name != nil {
		doc.Name = in.Name
	}
	if in.Type != nil {
		doc.Type = in.Type
	}
	if in.Size != nil {
		doc.Size = in.Size
	}
	return nil
}
