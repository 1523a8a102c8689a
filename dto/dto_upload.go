package dto

type UploadResp struct {
	UUID      string `json:"uuid"`
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	MediaType string `json:"mediaType"`
}
