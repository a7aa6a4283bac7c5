package converter

import (
	"datauri/internal/entity/db"
	"datauri/internal/entity/dto"
)

// UploadToDTO converts a db.Upload to dto.Upload. publicURL maps storage
// keys to client facing URLs and may be nil.
func UploadToDTO(u *db.Upload, publicURL func(key string) string) dto.Upload {
	if u == nil {
		return dto.Upload{}
	}
	out := dto.Upload{
		ID:          u.PublicID,
		Field:       u.Field,
		MediaType:   u.MediaType,
		Size:        u.Size,
		StorageType: u.StorageType,
		Owner:       u.Owner,
		CreatedAt:   u.CreatedAt,
	}
	if publicURL != nil {
		out.URL = publicURL(u.StorageKey)
	}
	return out
}

// UploadsToDTOs converts a slice of db.Upload to dto.Upload.
func UploadsToDTOs(uploads []db.Upload, publicURL func(key string) string) []dto.Upload {
	items := make([]dto.Upload, len(uploads))
	for i := range uploads {
		items[i] = UploadToDTO(&uploads[i], publicURL)
	}
	return items
}
