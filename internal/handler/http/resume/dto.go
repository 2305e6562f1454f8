// Package resume provides HTTP handlers for the private résumé folder:
// password unlock, listing, upload, streaming, rename and delete.
// Read access is protected by the unlock cookie; mutations require
// admin authentication.
package resume

import (
	"time"

	"personal-site/internal/domain/entity"
)

// DTO represents the JSON structure for a résumé record. The stored
// blob key is intentionally never exposed.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	DisplayName string    `json:"display_name" example:"resume-2025.pdf"`
	MimeType    *string   `json:"mime_type,omitempty" example:"application/pdf"`
	UploadedAt  time.Time `json:"uploaded_at" example:"2025-10-26T12:00:00Z"`
}

func toDTO(r *entity.Resume) DTO {
	return DTO{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		MimeType:    r.MimeType,
		UploadedAt:  r.UploadedAt,
	}
}

func toDTOs(resumes []*entity.Resume) []DTO {
	out := make([]DTO, 0, len(resumes))
	for _, r := range resumes {
		out = append(out, toDTO(r))
	}
	return out
}
