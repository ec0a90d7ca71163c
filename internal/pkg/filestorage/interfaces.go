package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for proof file storage operations. Core
// logic only stores and compares the returned URL strings; the storage
// backend owns the bytes.
type FileStorage interface {
	// SaveFile saves an uploaded file and returns the URL it is retrievable at
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves an uploaded file under a subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a stored file; deleting a missing file is not an error
	DeleteFile(fileURL string) error
}
