package model

import (
	"time"

	"netbelge/internal/storagepath"
)

// TimeLayout is the wire and storage format of Document.Time.
const TimeLayout = "15:04:05"

// Document is a registered record filed under a department and document type.
// DocumentNo is stored verbatim.
type Document struct {
	ID             string    `json:"id"`
	DepartmentID   string    `json:"department_id"`
	DocumentTypeID string    `json:"document_type_id"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Time           *string   `json:"time,omitempty"`
	DocumentNo     string    `json:"document_no"`
	Description    string    `json:"description"`
	Audit
}

// Clock returns the hour, minute and second of Time, or zeros when Time is
// unset or malformed.
func (d *Document) Clock() (hour, minute, second int) {
	if d.Time == nil {
		return 0, 0, 0
	}
	t, err := time.Parse(TimeLayout, *d.Time)
	if err != nil {
		return 0, 0, 0
	}
	return t.Hour(), t.Minute(), t.Second()
}

// UploadDir resolves the directory files of this document are stored under:
// the document type's full path with every placeholder filled from the
// document. docType must have its Department chain loaded.
func (d *Document) UploadDir(docType *DocumentType) string {
	hour, minute, second := d.Clock()
	return storagepath.Substitute(docType.FullPath(), storagepath.Values{
		Year:         d.Date.Year(),
		Month:        int(d.Date.Month()),
		Day:          d.Date.Day(),
		Hour:         hour,
		Minute:       minute,
		Second:       second,
		DocumentType: storagepath.Normalize(docType.Name),
		DocumentNo:   storagepath.Normalize(d.DocumentNo),
	})
}

// UploadPath is UploadDir followed by "/" and filename.
func (d *Document) UploadPath(docType *DocumentType, filename string) string {
	return d.UploadDir(docType) + "/" + filename
}

// DocumentFile is a stored attachment of a document. StoragePath is the object
// key in the file store.
type DocumentFile struct {
	ID          string `json:"id"`
	DocumentID  string `json:"document_id"`
	Filename    string `json:"filename"`
	StoragePath string `json:"storage_path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	Content     string `json:"content,omitempty"`
	Audit
}
