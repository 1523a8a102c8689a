package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"mini-instagram/internal/models"
)

type mongoPostRepo struct {
	col *mongo.Collection
}

func NewMongoPostRepo(db *mongo.Database) PostRepository {
	return &mongoPostRepo{col: db.Collection(ColPosts)}
}

func (r *mongoPostRepo) Create(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	p.TaggedPeople = orEmpty(p.TaggedPeople)
	p.Likes = orEmpty(p.Likes)
	p.Comments = orEmpty(p.Comments)

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *mongoPostRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPostRepo) ListNewestFirst(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchTitles matches title, caption or location and joins the creator's name.
func (r *mongoPostRepo) SearchTitles(ctx context.Context, q string, limit int64) ([]models.PostTitleHit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.PostTitleHit{}, nil
	}
	rx := bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}

	pipe := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": []bson.M{
			{"title": rx},
			{"caption": rx},
			{"location": rx},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         ColUsers,
			"localField":   "creator",
			"foreignField": "_id",
			"as":           "u",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$u", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"title":        1,
			"caption":      1,
			"creator_name": bson.M{"$ifNull": bson.A{"$u.name", ""}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	hits := []models.PostTitleHit{}
	if err := cur.All(ctx, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

func (r *mongoPostRepo) Save(ctx context.Context, p *models.Post) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"image_uuid":    p.MediaID,
		"image_url":     p.MediaURL,
		"media_type":    p.MediaType,
		"title":         p.Title,
		"caption":       p.Caption,
		"location":      p.Location,
		"tagged_people": orEmpty(p.TaggedPeople),
		"updated_at":    p.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoPostRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoPostRepo) PushComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	return r.updateOne(ctx, postID, bson.M{"$push": bson.M{"comments": commentID}})
}

func (r *mongoPostRepo) PullComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	return r.updateOne(ctx, postID, bson.M{"$pull": bson.M{"comments": commentID}})
}

// ToggleLike runs as two single-document atomic updates, so concurrent toggles
// never leave a duplicate like behind.
func (r *mongoPostRepo) ToggleLike(ctx context.Context, postID, userID bson.ObjectID) (bool, *models.Post, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	now := time.Now().UTC()

	var p models.Post
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}, "$set": bson.M{"updated_at": now}},
		after,
	).Decode(&p)
	if err == nil {
		return false, &p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil, err
	}

	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}, "$set": bson.M{"updated_at": now}},
		after,
	).Decode(&p)
	if err != nil {
		return false, nil, err
	}
	return true, &p, nil
}

func (r *mongoPostRepo) updateOne(ctx context.Context, id bson.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
