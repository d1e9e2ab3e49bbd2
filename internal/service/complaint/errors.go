package complaint

import "errors"

var (
	ErrNotFound        = errors.New("complaint not found")
	ErrInvalidStatus   = errors.New("invalid complaint status")
	ErrAttachmentLarge = errors.New("attachment exceeds the size limit")
	ErrNoID            = errors.New("complaint created but the API returned no id")
)
