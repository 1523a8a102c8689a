package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Post is the aggregate root: media reference, text fields, likes and comment ids.
type Post struct {
	ID           bson.ObjectID   `json:"_id" bson:"_id,omitempty"`
	MediaID      string          `json:"imageUuid" bson:"image_uuid"`
	MediaURL     string          `json:"imageUrl" bson:"image_url"`
	MediaType    string          `json:"mediaType" bson:"media_type"`
	Title        string          `json:"title" bson:"title"`
	Caption      string          `json:"caption" bson:"caption"`
	Location     string          `json:"location" bson:"location"`
	TaggedPeople []bson.ObjectID `json:"taggedPeople" bson:"tagged_people"`
	Creator      bson.ObjectID   `json:"creator" bson:"creator"`
	Likes        []bson.ObjectID `json:"likes" bson:"likes"`
	Comments     []bson.ObjectID `json:"comments" bson:"comments"`
	CreatedAt    time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" bson:"updated_at"`
}

func ValidMediaType(t string) bool {
	return t == MediaImage || t == MediaVideo
}

// PostTitleHit is a typeahead row: the post text fields plus its creator's name.
type PostTitleHit struct {
	ID          bson.ObjectID `bson:"_id"`
	Title       string        `bson:"title"`
	Caption     string        `bson:"caption"`
	CreatorName string        `bson:"creator_name"`
}
