package postsdk

import (
	validation "github.com/jellydator/validation"
)

const blankReason = "can't be blank"

// Validate checks that both fields are present. Errors are keyed by the
// JSON field name.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required.Error(blankReason)),
		validation.Field(&c.Password, validation.Required.Error(blankReason)),
	)
}

func (r RegisterRequest) Validate() error { return r.User.Validate() }

func (r LoginRequest) Validate() error { return r.User.Validate() }

// Validate rejects fields that are present but empty.
func (p UserPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.NilOrNotEmpty.Error(blankReason)),
		validation.Field(&p.Password, validation.NilOrNotEmpty.Error(blankReason)),
	)
}

func (r UpdateUserRequest) Validate() error { return r.User.Validate() }

func (p NewPost) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error(blankReason)),
		validation.Field(&p.Content, validation.Required.Error(blankReason)),
	)
}

func (r CreatePostRequest) Validate() error { return r.Post.Validate() }

func (p PostPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty.Error(blankReason)),
		validation.Field(&p.Content, validation.NilOrNotEmpty.Error(blankReason)),
	)
}

func (r UpdatePostRequest) Validate() error { return r.Post.Validate() }
