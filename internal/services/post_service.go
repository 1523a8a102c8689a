package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"mini-instagram/config"
	"mini-instagram/dto"
	"mini-instagram/internal/apperr"
	"mini-instagram/internal/models"
	"mini-instagram/internal/repository"
	"mini-instagram/internal/utils"
)

// MediaStore is the part of the blob store the post aggregate needs.
type MediaStore interface {
	ResolveURL(ctx context.Context, id string) (string, bool)
	Delete(ctx context.Context, id string) (bool, error)
}

type PostService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	media    MediaStore
	present  presenter
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, users repository.UserRepository, media MediaStore) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		media:    media,
		present:  presenter{users: users, comments: comments},
	}
}

// List returns every post newest-first; a non-blank search keeps posts whose
// title, caption, location or creator name contains it.
func (s *PostService) List(ctx context.Context, search string) ([]dto.PostResp, error) {
	posts, err := s.posts.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(search) != "" {
		creatorIDs := make([]bson.ObjectID, 0, len(posts))
		for _, p := range posts {
			creatorIDs = append(creatorIDs, p.Creator)
		}
		creators, err := s.present.userMap(ctx, creatorIDs)
		if err != nil {
			return nil, err
		}

		kept := posts[:0]
		for _, p := range posts {
			if utils.MatchesQuery(search, p.Title, p.Caption, p.Location, creators[p.Creator].Name) {
				kept = append(kept, p)
			}
		}
		posts = kept
	}

	return s.present.posts(ctx, posts)
}

func (s *PostService) Get(ctx context.Context, id string) (*dto.PostResp, error) {
	oid, err := parseID(id, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}
	return s.present.post(ctx, *p)
}

// SearchTitles is the typeahead: at most config.TypeaheadLimit hits, newest first.
func (s *PostService) SearchTitles(ctx context.Context, q string) ([]dto.PostSearchResult, error) {
	out := []dto.PostSearchResult{}
	if strings.TrimSpace(q) == "" {
		return out, nil
	}

	hits, err := s.posts.SearchTitles(ctx, q, config.TypeaheadLimit)
	if err != nil {
		return nil, err
	}
	for _, h := range hits {
		title := h.Title
		if title == "" {
			title = h.Caption
		}
		if title == "" {
			title = "Untitled"
		}
		creator := h.CreatorName
		if creator == "" {
			creator = "Unknown"
		}
		out = append(out, dto.PostSearchResult{ID: h.ID, Title: title, CreatorName: creator})
	}
	return out, nil
}

func (s *PostService) Create(ctx context.Context, ownerID bson.ObjectID, in dto.CreatePostRequest) (*dto.PostResp, error) {
	mediaID := strings.TrimSpace(in.ImageUUID)
	if mediaID == "" {
		return nil, ErrMediaIDRequired
	}

	mediaType := in.MediaType
	if mediaType == "" {
		mediaType = models.MediaImage
	}
	if !models.ValidMediaType(mediaType) {
		return nil, ErrInvalidMediaType
	}

	tagged, err := parseTagged(in.TaggedPeople)
	if err != nil {
		return nil, err
	}

	url := strings.TrimSpace(in.ImageURL)
	if url == "" {
		resolved, ok := s.media.ResolveURL(ctx, mediaID)
		if !ok {
			return nil, ErrMediaNotFound
		}
		url = resolved
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:           bson.NewObjectID(),
		MediaID:      mediaID,
		MediaURL:     url,
		MediaType:    mediaType,
		Title:        in.Title,
		Caption:      in.Caption,
		Location:     in.Location,
		TaggedPeople: tagged,
		Creator:      ownerID,
		Likes:        []bson.ObjectID{},
		Comments:     []bson.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		return nil, err
	}

	utils.Logger.Info("post created", zap.String("post_id", post.ID.Hex()), zap.String("creator", ownerID.Hex()))
	return s.present.post(ctx, post)
}

// Update applies the fields present in in. A new media id replaces the stored
// object; the old one is deleted before the record is saved.
func (s *PostService) Update(ctx context.Context, requesterID bson.ObjectID, id string, in dto.UpdatePostRequest) (*dto.PostResp, error) {
	oid, err := parseID(id, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}
	if p.Creator != requesterID {
		return nil, ErrPostUpdateForbidden
	}

	if in.MediaType != nil && !models.ValidMediaType(*in.MediaType) {
		return nil, ErrInvalidMediaType
	}
	var tagged []bson.ObjectID
	if in.TaggedPeople != nil {
		if tagged, err = parseTagged(*in.TaggedPeople); err != nil {
			return nil, err
		}
	}

	if in.ImageUUID != nil && *in.ImageUUID != "" {
		newID := *in.ImageUUID
		url := ""
		if in.ImageURL != nil {
			url = strings.TrimSpace(*in.ImageURL)
		}
		if url == "" {
			resolved, ok := s.media.ResolveURL(ctx, newID)
			if !ok {
				return nil, ErrMediaNotFound
			}
			url = resolved
		}
		if p.MediaID != "" && p.MediaID != newID {
			s.dropMedia(ctx, p.MediaID)
		}
		p.MediaID = newID
		p.MediaURL = url
	}

	if in.MediaType != nil {
		p.MediaType = *in.MediaType
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Caption != nil {
		p.Caption = *in.Caption
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.TaggedPeople != nil {
		p.TaggedPeople = tagged
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.posts.Save(ctx, p); err != nil {
		return nil, notFoundAs(err, ErrPostNotFound)
	}
	return s.present.post(ctx, *p)
}

// Delete removes the post's comments, then its media (best-effort), then the post.
func (s *PostService) Delete(ctx context.Context, requesterID bson.ObjectID, id string) error {
	oid, err := parseID(id, ErrPostNotFound)
	if err != nil {
		return err
	}
	p, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return notFoundAs(err, ErrPostNotFound)
	}
	if p.Creator != requesterID {
		return ErrPostDeleteForbidden
	}

	n, err := s.comments.DeleteByPost(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.MediaID != "" {
		s.dropMedia(ctx, p.MediaID)
	}
	if err := s.posts.Delete(ctx, p.ID); err != nil {
		return notFoundAs(err, ErrPostNotFound)
	}

	utils.Logger.Info("post deleted", zap.String("post_id", p.ID.Hex()), zap.Int64("comments", n))
	return nil
}

// dropMedia never fails the caller; the blob may already be gone.
func (s *PostService) dropMedia(ctx context.Context, mediaID string) {
	ok, err := s.media.Delete(ctx, mediaID)
	if err != nil {
		utils.Logger.Warn("media delete failed", zap.String("media_id", mediaID), zap.Error(err))
		return
	}
	if !ok {
		utils.Logger.Debug("media already absent", zap.String("media_id", mediaID))
	}
}

func parseTagged(list dto.StringList) ([]bson.ObjectID, error) {
	ids, bad, err := utils.ParseObjectIDs(list)
	if err != nil {
		return nil, apperr.New(apperr.BadRequest, "Invalid tagged user id: "+bad)
	}
	return utils.DedupeObjectIDs(ids), nil
}
