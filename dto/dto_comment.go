package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateCommentReq struct {
	Text   string `json:"text" validate:"required,max=2000"`
	PostID string `json:"postId" validate:"required"`
}

type UpdateCommentReq struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// CommentResp embeds the author's name only.
type CommentResp struct {
	ID        bson.ObjectID `json:"_id"`
	Post      bson.ObjectID `json:"post"`
	User      UserRef       `json:"user"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type ListCommentsResp struct {
	Success    bool          `json:"success"`
	Count      int           `json:"count"`
	Data       []CommentResp `json:"data"`
	NextCursor *string       `json:"nextCursor,omitempty"`
	HasMore    bool          `json:"hasMore"`
}
