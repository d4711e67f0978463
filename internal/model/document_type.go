package model

// DocumentType is a category of documents owned by one department. Path is a
// template that may contain storagepath placeholders.
type DocumentType struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Path         string `json:"path"`
	Description  string `json:"description"`
	Audit

	Department *Department `json:"-"`
}

// FullPath is the department's full path followed by the unsubstituted
// template. Department must be loaded.
func (t *DocumentType) FullPath() string {
	if t.Department == nil {
		return t.Path
	}
	return t.Department.FullPath() + "/" + t.Path
}

// DocumentSection is a named part of a document type. It has no path of its own.
type DocumentSection struct {
	ID             string `json:"id"`
	DocumentTypeID string `json:"document_type_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Audit
}
