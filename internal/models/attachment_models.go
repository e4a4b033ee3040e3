package models

// Attachment is an image attached to a chat command, before staging.
type Attachment struct {
	ID          string
	Filename    string
	URL         string
	ContentType string
	Size        int
}

// StagedImage is an attachment written to the local working directory.
// Data is filled once the staged file has been read back.
type StagedImage struct {
	Name        string
	Path        string
	ContentType string
	Data        []byte
}
