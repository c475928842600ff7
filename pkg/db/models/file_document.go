package models

// FileDocument is an embedded document: the file's raw bytes plus original
// filename, MIME type and byte size stored inline on the owning row. The
// four columns move together; a zero FileDocument means no document.
type FileDocument struct {
	Data []byte  `gorm:"column:data"`
	Name *string `gorm:"column:name"`
	Type *string `gorm:"column:type"`
	Size *int    `gorm:"column:size"`
}

// IsZero reports whether no document is attached.
func (d FileDocument) IsZero() bool {
	return len(d.Data) == 0 && d.Name == nil && d.Type == nil && d.Size == nil
}
