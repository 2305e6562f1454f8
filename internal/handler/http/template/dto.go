// Package template provides HTTP handlers for the public template
// gallery: listing, streaming with usage counters, share links and
// admin uploads.
package template

import (
	"time"

	"personal-site/internal/domain/entity"
)

// DTO represents the JSON structure for a template record.
type DTO struct {
	ID            int64     `json:"id" example:"1"`
	Slug          string    `json:"slug" example:"invoice"`
	DisplayName   string    `json:"display_name" example:"invoice.docx"`
	MimeType      *string   `json:"mime_type,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at" example:"2025-10-26T12:00:00Z"`
	ViewCount     int64     `json:"view_count" example:"42"`
	DownloadCount int64     `json:"download_count" example:"7"`
	ShareCount    int64     `json:"share_count" example:"3"`
}

func toDTO(tpl *entity.Template) DTO {
	return DTO{
		ID:            tpl.ID,
		Slug:          tpl.Slug,
		DisplayName:   tpl.DisplayName,
		MimeType:      tpl.MimeType,
		UploadedAt:    tpl.UploadedAt,
		ViewCount:     tpl.ViewCount,
		DownloadCount: tpl.DownloadCount,
		ShareCount:    tpl.ShareCount,
	}
}

func toDTOs(templates []*entity.Template) []DTO {
	out := make([]DTO, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, toDTO(tpl))
	}
	return out
}
