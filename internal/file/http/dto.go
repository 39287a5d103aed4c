package http

type UploadResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}
