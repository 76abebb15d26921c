package models

import (
	"io"
	"regexp"
	"strings"
	"time"
)

// Material represents a shared note or document together with its metadata
type Material struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	FileURL        string    `json:"file_url"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	Subject        string    `json:"subject,omitempty"`
	Branch         string    `json:"branch,omitempty"`
	Semester       string    `json:"semester,omitempty"`
	Module         string    `json:"module,omitempty"`
	CollegeDetails string    `json:"college_details,omitempty"`
	UploaderName   string    `json:"uploader_name,omitempty"`
}

// FileKind describes how a material file can be previewed
type FileKind string

const (
	FileKindPDF      FileKind = "pdf"
	FileKindImage    FileKind = "image"
	FileKindDocument FileKind = "document"
)

var imageURLRegex = regexp.MustCompile(`(?i)\.(jpeg|jpg|gif|png)$`)

// Kind returns the preview kind of the material file based on its URL
func (m *Material) Kind() FileKind {
	if strings.Contains(strings.ToLower(m.FileURL), ".pdf") {
		return FileKindPDF
	}
	if imageURLRegex.MatchString(m.FileURL) {
		return FileKindImage
	}
	return FileKindDocument
}

// IsOwnedBy reports whether the user with the given id may delete the material.
// An empty user id never owns anything.
func (m *Material) IsOwnedBy(userID string) bool {
	return userID != "" && m.UserID == userID
}

// MaterialView is a material as shown to a particular viewer
type MaterialView struct {
	Material
	FileKind  FileKind `json:"file_kind"`
	CanDelete bool     `json:"can_delete"`
}

// NewMaterialView builds the view of a material for the viewer with the given id
func NewMaterialView(m Material, viewerID string) MaterialView {
	return MaterialView{
		Material:  m,
		FileKind:  m.Kind(),
		CanDelete: m.IsOwnedBy(viewerID),
	}
}

// Filter holds catalog filter selections. Empty fields are not applied.
type Filter struct {
	Query    string `json:"q"`
	Branch   string `json:"branch"`
	Module   string `json:"module"`
	Semester string `json:"semester"`
}

// UploadFile is a file selected for upload
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadForm holds the upload form fields.
// Field order matters: validation reports the first missing field in declaration order.
type UploadForm struct {
	File           *UploadFile `validate:"required"`
	Title          string      `validate:"required"`
	Branch         string      `validate:"required"`
	Subject        string      `validate:"required"`
	Semester       string
	Module         string
	CollegeDetails string
	UploaderName   string
}

// ShareLinks holds ways of sharing a material
type ShareLinks struct {
	CopyLink     string `json:"copy_link"`
	WhatsAppLink string `json:"whatsapp_link"`
}
