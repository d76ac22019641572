package shared

// Background task types.
const (
	TypeDeleteAuthorImage  = "author:delete_image"
	TypeDeleteAuthorImages = "author:delete_images"

	QueueDefault = "default"
	QueueLow     = "low"
)

// DeleteImagePayload names a single stored object, e.g. a replaced profile image.
type DeleteImagePayload struct {
	Key string `json:"key"`
}

// DeleteAuthorImagesPayload removes everything stored for a deleted author.
type DeleteAuthorImagesPayload struct {
	AuthorID string `json:"authorId"`
}
