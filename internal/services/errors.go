package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"mini-instagram/internal/apperr"
)

var (
	ErrPostNotFound        = apperr.New(apperr.NotFound, "Post not found")
	ErrPostUpdateForbidden = apperr.New(apperr.Forbidden, "Not authorized to update this post")
	ErrPostDeleteForbidden = apperr.New(apperr.Forbidden, "Not authorized to delete this post")
	ErrMediaIDRequired     = apperr.New(apperr.BadRequest, "Please provide imageUuid")
	ErrMediaNotFound       = apperr.New(apperr.BadRequest, "File not found. Please ensure the file was uploaded successfully.")
	ErrInvalidMediaType    = apperr.New(apperr.BadRequest, "mediaType must be one of: image, video")

	ErrCommentNotFound        = apperr.New(apperr.NotFound, "Comment not found")
	ErrCommentInputRequired   = apperr.New(apperr.BadRequest, "Please provide text and postId")
	ErrCommentTextRequired    = apperr.New(apperr.BadRequest, "Please provide comment text")
	ErrCommentEditForbidden   = apperr.New(apperr.Forbidden, "Not authorized to edit this comment")
	ErrCommentDeleteForbidden = apperr.New(apperr.Forbidden, "Not authorized to delete this comment")
	ErrInvalidCursor          = apperr.New(apperr.BadRequest, "invalid cursor")

	ErrUserNotFound       = apperr.New(apperr.NotFound, "User not found")
	ErrAuthFieldsRequired = apperr.New(apperr.BadRequest, "Please provide all required fields")
	ErrLoginFieldsMissing = apperr.New(apperr.BadRequest, "Please provide email and password")
	ErrEmailTaken         = apperr.New(apperr.BadRequest, "User already exists with this email")
	ErrInvalidCredentials = apperr.New(apperr.Unauthorized, "Invalid email or password")
)

// parseID maps a malformed hex id to notFound: it can never match a stored document.
func parseID(hex string, notFound error) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, notFound
	}
	return id, nil
}

func notFoundAs(err, notFound error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	return err
}
