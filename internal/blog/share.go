package blog

import (
	"context"
	"fmt"

	"inkwell/internal/forms"
	"inkwell/internal/mailer"
	"inkwell/internal/models"
)

// FindSharablePost resolves a published post by its numeric ID.
func (s *Service) FindSharablePost(ctx context.Context, id int64) (*models.Post, error) {
	if id < 1 {
		return nil, ErrNotFound
	}
	post, err := s.posts.FindPublishedByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find sharable post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	s.localize(post)
	return post, nil
}

// RecommendationMessage composes the email recommending post to in.To.
// postURL must be absolute.
func (s *Service) RecommendationMessage(post *models.Post, in forms.ShareInput, postURL string) *mailer.Message {
	return &mailer.Message{
		Subject: fmt.Sprintf("%s (%s) recommends you read %q", in.Name, in.Email, post.Title),
		Body:    fmt.Sprintf("Read %q at %s\n\n%s's comments: %s", post.Title, postURL, in.Name, in.Comments),
		From:    s.opts.MailFrom,
		To:      []string{in.To},
	}
}

// SharePost sends one recommendation email. Delivery errors are returned
// unchanged in meaning; nothing is retried or queued.
func (s *Service) SharePost(ctx context.Context, post *models.Post, in forms.ShareInput, postURL string) error {
	if err := s.mail.Send(ctx, s.RecommendationMessage(post, in, postURL)); err != nil {
		return fmt.Errorf("share post %d: %w", post.ID, err)
	}
	return nil
}
