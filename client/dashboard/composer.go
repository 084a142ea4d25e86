package dashboard

import (
	"context"
	"errors"

	"peer-backend/client"
)

// Composer states.
const (
	ComposerIdle       = "idle"
	ComposerComposing  = "composing"
	ComposerSubmitting = "submitting"
)

// Composer is the post creation state machine: idle → composing →
// submitting → idle on success, back to composing on validation
// failure, back to idle on network failure with the error surfaced to
// the caller.
type Composer struct {
	api *client.Client

	state   string
	content string
	photo   *pendingPhoto
}

func NewComposer(api *client.Client) *Composer {
	return &Composer{api: api, state: ComposerIdle}
}

func (p *Composer) State() string { return p.state }

func (p *Composer) Begin() {
	p.state = ComposerComposing
	p.content = ""
	p.photo = nil
}

func (p *Composer) SetContent(content string) {
	p.content = content
}

// AttachPhoto stages an image for the post. The same pure validation as
// profile photos applies, before anything is sent.
func (p *Composer) AttachPhoto(filename string, data []byte) error {
	if err := ValidatePhoto(filename, int64(len(data))); err != nil {
		return err
	}
	p.photo = &pendingPhoto{filename: filename, data: data}
	return nil
}

func (p *Composer) Discard() {
	p.state = ComposerIdle
	p.content = ""
	p.photo = nil
}

// Submit publishes the post. A staged photo is uploaded first and
// attached by URL; base64 payloads never travel with the post body.
func (p *Composer) Submit(ctx context.Context) (*client.Post, error) {
	if p.state != ComposerComposing {
		return nil, errors.New("nothing to submit")
	}
	if p.content == "" {
		// Validation failure keeps the form open.
		return nil, errors.New("Content is required")
	}

	p.state = ComposerSubmitting

	var imageURL *string
	if p.photo != nil {
		url, err := p.api.UploadPostPhoto(ctx, p.photo.filename, p.photo.data)
		if err != nil {
			p.state = ComposerIdle
			return nil, err
		}
		imageURL = &url
	}

	post, err := p.api.CreatePost(ctx, p.content, imageURL)
	if err != nil {
		p.state = ComposerIdle
		return nil, err
	}

	p.state = ComposerIdle
	p.content = ""
	p.photo = nil
	return post, nil
}

// CanDelete reports whether the delete control should be offered for a
// post: stable id comparison, never display names.
func CanDelete(post *client.Post, current *client.User) bool {
	return current != nil && post.User.ID == current.ID
}
