package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"mini-instagram/dto"
	"mini-instagram/internal/models"
	"mini-instagram/internal/repository"
	"mini-instagram/internal/utils"
)

// presenter resolves the user and comment references embedded in responses.
type presenter struct {
	users    repository.UserRepository
	comments repository.CommentRepository
}

func (pr presenter) userMap(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]models.User, error) {
	users, err := pr.users.FindByIDs(ctx, utils.DedupeObjectIDs(ids))
	if err != nil {
		return nil, err
	}
	m := make(map[bson.ObjectID]models.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m, nil
}

func (pr presenter) posts(ctx context.Context, posts []models.Post) ([]dto.PostResp, error) {
	var commentIDs []bson.ObjectID
	for _, p := range posts {
		commentIDs = append(commentIDs, p.Comments...)
	}
	comments, err := pr.comments.FindByIDs(ctx, commentIDs)
	if err != nil {
		return nil, err
	}

	var userIDs []bson.ObjectID
	for _, p := range posts {
		userIDs = append(userIDs, p.Creator)
		userIDs = append(userIDs, p.TaggedPeople...)
	}
	for _, c := range comments {
		userIDs = append(userIDs, c.User)
	}
	users, err := pr.userMap(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	byPost := make(map[bson.ObjectID][]dto.CommentResp)
	for _, c := range comments {
		byPost[c.Post] = append(byPost[c.Post], commentResp(c, users))
	}

	out := make([]dto.PostResp, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResp(p, users, byPost[p.ID]))
	}
	return out, nil
}

func (pr presenter) post(ctx context.Context, p models.Post) (*dto.PostResp, error) {
	out, err := pr.posts(ctx, []models.Post{p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (pr presenter) commentList(ctx context.Context, comments []models.Comment) ([]dto.CommentResp, error) {
	ids := make([]bson.ObjectID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.User)
	}
	users, err := pr.userMap(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResp, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentResp(c, users))
	}
	return out, nil
}

func postResp(p models.Post, users map[bson.ObjectID]models.User, comments []dto.CommentResp) dto.PostResp {
	tagged := make([]dto.UserRef, 0, len(p.TaggedPeople))
	for _, id := range p.TaggedPeople {
		if u, ok := users[id]; ok {
			tagged = append(tagged, dto.NewUserRef(u))
		}
	}
	creator := dto.UserRef{ID: p.Creator}
	if u, ok := users[p.Creator]; ok {
		creator = dto.NewUserRef(u)
	}
	if comments == nil {
		comments = []dto.CommentResp{}
	}
	likes := p.Likes
	if likes == nil {
		likes = []bson.ObjectID{}
	}

	return dto.PostResp{
		ID:           p.ID,
		ImageUUID:    p.MediaID,
		ImageURL:     p.MediaURL,
		MediaType:    p.MediaType,
		Title:        p.Title,
		Caption:      p.Caption,
		Location:     p.Location,
		TaggedPeople: tagged,
		Creator:      creator,
		Likes:        likes,
		Comments:     comments,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// Comment authors carry their name only.
func commentResp(c models.Comment, users map[bson.ObjectID]models.User) dto.CommentResp {
	author := dto.UserRef{ID: c.User}
	if u, ok := users[c.User]; ok {
		author.Name = u.Name
	}
	return dto.CommentResp{
		ID:        c.ID,
		Post:      c.Post,
		User:      author,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
