package model

// PostInput carries the owner-submitted fields for create and update.
// Published holds the raw submitted value; nil means the field was absent.
type PostInput struct {
	Title      string       `validate:"required,max=255"`
	Content    string       `validate:"required,max=65535"`
	Published  *string      `validate:"omitempty,oneof=yes on 1 true"`
	CategoryID *int64       `validate:"omitempty,gt=0"`
	TagIDs     []int64      `validate:"omitempty,dive,gt=0"`
	Image      *ImageUpload `validate:"omitempty"`
}

// IsPublished reports the published state the input asks for. An absent
// field always means draft.
func (in *PostInput) IsPublished() bool {
	if in.Published == nil {
		return false
	}
	switch *in.Published {
	case "yes", "on", "1", "true":
		return true
	}
	return false
}

type ImageUpload struct {
	Filename string
	Data     []byte
}
