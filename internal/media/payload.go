package media

type UploadResponse struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}
