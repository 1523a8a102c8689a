package dto

type LikeResult struct {
	Post      *PostResp `json:"post"`
	Liked     bool      `json:"liked"`
	LikeCount int       `json:"likeCount"`
}
