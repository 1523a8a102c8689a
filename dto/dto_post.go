package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StringList accepts either a JSON string or an array of strings.
// An empty string decodes to an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = StringList{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*l = StringList{}
		} else {
			*l = StringList{s}
		}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*l = StringList(arr)
	return nil
}

type CreatePostRequest struct {
	ImageUUID    string     `json:"imageUuid"`
	ImageURL     string     `json:"imageUrl"`
	MediaType    string     `json:"mediaType"`
	Title        string     `json:"title"`
	Caption      string     `json:"caption"`
	Location     string     `json:"location"`
	TaggedPeople StringList `json:"taggedPeople"`
}

// UpdatePostRequest distinguishes an absent field (nil) from an empty one ("").
type UpdatePostRequest struct {
	ImageUUID    *string     `json:"imageUuid"`
	ImageURL     *string     `json:"imageUrl"`
	MediaType    *string     `json:"mediaType"`
	Title        *string     `json:"title"`
	Caption      *string     `json:"caption"`
	Location     *string     `json:"location"`
	TaggedPeople *StringList `json:"taggedPeople"`
}

type PostResp struct {
	ID           bson.ObjectID   `json:"_id"`
	ImageUUID    string          `json:"imageUuid"`
	ImageURL     string          `json:"imageUrl"`
	MediaType    string          `json:"mediaType"`
	Title        string          `json:"title"`
	Caption      string          `json:"caption"`
	Location     string          `json:"location"`
	TaggedPeople []UserRef       `json:"taggedPeople"`
	Creator      UserRef         `json:"creator"`
	Likes        []bson.ObjectID `json:"likes"`
	Comments     []CommentResp   `json:"comments"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type PostSearchResult struct {
	ID          bson.ObjectID `json:"id"`
	Title       string        `json:"title"`
	CreatorName string        `json:"creatorName"`
}
