package models

// Logical folders used by the object store.
const (
	FolderProfilePictures = "profile-pictures"
	FolderCertificates    = "certificates"
)

// Artifact is a file received from the client, held in memory until it is
// uploaded. It is never persisted as is.
type Artifact struct {
	Buffer           []byte
	OriginalFilename string
	ContentType      string
}

// IsEmpty reports whether the artifact lacks content or a filename.
func (a Artifact) IsEmpty() bool {
	return len(a.Buffer) == 0 || a.OriginalFilename == ""
}

// UploadedArtifact describes an object that was written to the object store.
// Key can always be recovered from URL, so only URL needs to be kept.
type UploadedArtifact struct {
	URL    string
	Key    string
	Folder string
}
