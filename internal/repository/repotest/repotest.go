// Package repotest holds in-memory repositories for service and handler tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"mini-instagram/internal/cursor"
	"mini-instagram/internal/models"
	"mini-instagram/internal/repository"
	"mini-instagram/internal/utils"
)

// DB is a shared store so the post typeahead can join creator names.
type DB struct {
	mu       sync.Mutex
	users    map[bson.ObjectID]models.User
	posts    map[bson.ObjectID]models.Post
	comments map[bson.ObjectID]models.Comment
}

func NewDB() *DB {
	return &DB{
		users:    map[bson.ObjectID]models.User{},
		posts:    map[bson.ObjectID]models.Post{},
		comments: map[bson.ObjectID]models.Comment{},
	}
}

func (d *DB) Posts() repository.PostRepository       { return postRepo{d} }
func (d *DB) Comments() repository.CommentRepository { return commentRepo{d} }
func (d *DB) Users() repository.UserRepository       { return userRepo{d} }

// Post returns a copy of the stored post, or false.
func (d *DB) Post(id bson.ObjectID) (models.Post, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.posts[id]
	return clonePost(p), ok
}

func (d *DB) CommentCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.comments)
}

func (d *DB) Comment(id bson.ObjectID) (models.Comment, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.comments[id]
	return c, ok
}

// AddUser stores u, assigning an id when missing.
func (d *DB) AddUser(u models.User) models.User {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	d.mu.Lock()
	d.users[u.ID] = u
	d.mu.Unlock()
	return u
}

func clonePost(p models.Post) models.Post {
	p.TaggedPeople = append([]bson.ObjectID{}, p.TaggedPeople...)
	p.Likes = append([]bson.ObjectID{}, p.Likes...)
	p.Comments = append([]bson.ObjectID{}, p.Comments...)
	return p
}

func newer(aT time.Time, aID bson.ObjectID, bT time.Time, bID bson.ObjectID) bool {
	if !aT.Equal(bT) {
		return aT.After(bT)
	}
	return aID.Hex() > bID.Hex()
}

// ---- posts ----

type postRepo struct{ d *DB }

func (r postRepo) Create(_ context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.posts[p.ID] = clonePost(*p)
	return nil
}

func (r postRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	p, ok := r.d.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := clonePost(p)
	return &cp, nil
}

func (r postRepo) ListNewestFirst(_ context.Context) ([]models.Post, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := make([]models.Post, 0, len(r.d.posts))
	for _, p := range r.d.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out, nil
}

func (r postRepo) SearchTitles(ctx context.Context, q string, limit int64) ([]models.PostTitleHit, error) {
	hits := []models.PostTitleHit{}
	if strings.TrimSpace(q) == "" {
		return hits, nil
	}
	posts, _ := r.ListNewestFirst(ctx)

	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, p := range posts {
		if int64(len(hits)) >= limit {
			break
		}
		if !utils.MatchesQuery(q, p.Title, p.Caption, p.Location) {
			continue
		}
		hits = append(hits, models.PostTitleHit{
			ID:          p.ID,
			Title:       p.Title,
			Caption:     p.Caption,
			CreatorName: r.d.users[p.Creator].Name,
		})
	}
	return hits, nil
}

func (r postRepo) Save(_ context.Context, p *models.Post) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	cur, ok := r.d.posts[p.ID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	cur.MediaID = p.MediaID
	cur.MediaURL = p.MediaURL
	cur.MediaType = p.MediaType
	cur.Title = p.Title
	cur.Caption = p.Caption
	cur.Location = p.Location
	cur.TaggedPeople = append([]bson.ObjectID{}, p.TaggedPeople...)
	cur.UpdatedAt = p.UpdatedAt
	r.d.posts[p.ID] = cur
	return nil
}

func (r postRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.posts[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.d.posts, id)
	return nil
}

func (r postRepo) PushComment(_ context.Context, postID, commentID bson.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	p, ok := r.d.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Comments = append(p.Comments, commentID)
	r.d.posts[postID] = p
	return nil
}

func (r postRepo) PullComment(_ context.Context, postID, commentID bson.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	p, ok := r.d.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Comments = without(p.Comments, commentID)
	r.d.posts[postID] = p
	return nil
}

func (r postRepo) ToggleLike(_ context.Context, postID, userID bson.ObjectID) (bool, *models.Post, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	p, ok := r.d.posts[postID]
	if !ok {
		return false, nil, mongo.ErrNoDocuments
	}
	liked := true
	if contains(p.Likes, userID) {
		p.Likes = without(p.Likes, userID)
		liked = false
	} else {
		p.Likes = append(p.Likes, userID)
	}
	p.UpdatedAt = time.Now().UTC()
	r.d.posts[postID] = p
	cp := clonePost(p)
	return liked, &cp, nil
}

func contains(ids []bson.ObjectID, id bson.ObjectID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func without(ids []bson.ObjectID, id bson.ObjectID) []bson.ObjectID {
	out := make([]bson.ObjectID, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// ---- comments ----

type commentRepo struct{ d *DB }

func (r commentRepo) Create(_ context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.comments[c.ID] = *c
	return nil
}

func (r commentRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.Comment, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &c, nil
}

func (r commentRepo) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.Comment, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := []models.Comment{}
	for _, id := range ids {
		if c, ok := r.d.comments[id]; ok {
			out = append(out, c)
		}
	}
	sortComments(out)
	return out, nil
}

func (r commentRepo) ListByPostNewestFirst(_ context.Context, postID bson.ObjectID, cursorStr string, limit int64) ([]models.Comment, *string, error) {
	var (
		afterT  time.Time
		afterID bson.ObjectID
	)
	if cursorStr != "" {
		t, oid, err := cursor.DecodeCommentCursor(cursorStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", repository.ErrInvalidCursor, err)
		}
		afterT, afterID = t, oid
	}

	r.d.mu.Lock()
	all := []models.Comment{}
	for _, c := range r.d.comments {
		if c.Post != postID {
			continue
		}
		if cursorStr != "" && !newer(afterT, afterID, c.CreatedAt, c.ID) {
			continue
		}
		all = append(all, c)
	}
	r.d.mu.Unlock()
	sortComments(all)

	if limit > 0 && int64(len(all)) > limit {
		items := all[:limit]
		last := items[len(items)-1]
		s := cursor.EncodeCommentCursor(last.CreatedAt, last.ID)
		return items, &s, nil
	}
	return all, nil, nil
}

func (r commentRepo) UpdateText(_ context.Context, id bson.ObjectID, text string, at time.Time) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.comments[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.Text = text
	c.UpdatedAt = at
	r.d.comments[id] = c
	return nil
}

func (r commentRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.comments[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.d.comments, id)
	return nil
}

func (r commentRepo) DeleteByPost(_ context.Context, postID bson.ObjectID) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var n int64
	for id, c := range r.d.comments {
		if c.Post == postID {
			delete(r.d.comments, id)
			n++
		}
	}
	return n, nil
}

func sortComments(cs []models.Comment) {
	sort.Slice(cs, func(i, j int) bool {
		return newer(cs[i].CreatedAt, cs[i].ID, cs[j].CreatedAt, cs[j].ID)
	})
}

// ---- users ----

type userRepo struct{ d *DB }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, existing := range r.d.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.d.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, u := range r.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r userRepo) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.d.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r userRepo) Search(_ context.Context, q string, limit int64) ([]models.User, error) {
	out := []models.User{}
	if strings.TrimSpace(q) == "" {
		return out, nil
	}
	r.d.mu.Lock()
	for _, u := range r.d.users {
		if utils.MatchesQuery(q, u.Name, u.Email) {
			out = append(out, u)
		}
	}
	r.d.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
