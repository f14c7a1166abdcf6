package service

import (
	"renolab/internal/domain"
)

// PhotoURLResolver turns a stored object key into a URL an anonymous viewer
// can fetch. The sanitizer stays pure given a fixed resolver.
type PhotoURLResolver func(objectKey string) string

// SanitizePayload produces the public-safe projection of an already
// scope-filtered payload. It is an allow-list: fields cross into the public
// types one by one, so anything the internal payload grows later is invisible
// here until someone deliberately adds it.
func SanitizePayload(payload domain.ToolPayload, flags domain.ShareFlags, urlFor PhotoURLResolver) domain.PublicPayload {
	return ApplyShareFlags(projectPayload(payload, urlFor), flags)
}

// projectPayload maps internal rows to public shapes with everything the
// three flags could permit still present. Reviewer contact data never crosses:
// comments keep the display name only, never the email.
func projectPayload(payload domain.ToolPayload, urlFor PhotoURLResolver) domain.PublicPayload {
	descriptor, _ := domain.DescribeTool(payload.ToolKey)

	itemsByGroup := make(map[string][]domain.PublicItem)
	for _, item := range payload.Items {
		public := domain.PublicItem{
			ID:       item.ID.String(),
			Title:    item.Title,
			Status:   item.Status,
			Notes:    copyNotes(item.Notes),
			Comments: []domain.PublicComment{},
			Photos:   []domain.PublicPhoto{},
		}

		if item.HeroPhotoKey != nil && *item.HeroPhotoKey != "" {
			url := urlFor(*item.HeroPhotoKey)
			public.HeroURL = &url
		}
		for _, c := range item.Comments {
			public.Comments = append(public.Comments, domain.PublicComment{
				AuthorName: c.AuthorName,
				Body:       c.Body,
				CreatedAt:  c.CreatedAt,
			})
		}
		for _, p := range item.Photos {
			public.Photos = append(public.Photos, domain.PublicPhoto{
				ID:      p.ID.String(),
				URL:     urlFor(p.ObjectKey),
				Caption: p.Caption,
			})
		}

		groupID := item.GroupID.String()
		itemsByGroup[groupID] = append(itemsByGroup[groupID], public)
	}

	result := domain.PublicPayload{
		ToolKey:   payload.ToolKey,
		GroupNoun: descriptor.GroupNoun,
		Groups:    []domain.PublicGroup{},
	}
	for _, group := range payload.Groups {
		id := group.ID.String()
		items := itemsByGroup[id]
		if items == nil {
			items = []domain.PublicItem{}
		}
		result.Groups = append(result.Groups, domain.PublicGroup{
			ID:    id,
			Name:  group.Name,
			Items: items,
		})
	}

	return result
}

// ApplyShareFlags redacts a public payload down to what the flags permit.
// Idempotent: a second application with the same flags changes nothing.
func ApplyShareFlags(payload domain.PublicPayload, flags domain.ShareFlags) domain.PublicPayload {
	result := domain.PublicPayload{
		ToolKey:   payload.ToolKey,
		GroupNoun: payload.GroupNoun,
		Groups:    make([]domain.PublicGroup, 0, len(payload.Groups)),
	}

	for _, group := range payload.Groups {
		items := make([]domain.PublicItem, 0, len(group.Items))
		for _, item := range group.Items {
			redacted := domain.PublicItem{
				ID:       item.ID,
				Title:    item.Title,
				Status:   item.Status,
				Comments: []domain.PublicComment{},
				Photos:   []domain.PublicPhoto{},
			}

			if flags.IncludeNotes {
				// Absent, not empty: with the flag off the field must not
				// exist at all in the rendered payload.
				redacted.Notes = copyNotes(item.Notes)
			}
			if flags.IncludeComments {
				redacted.Comments = append(redacted.Comments, item.Comments...)
			}
			if flags.IncludePhotos {
				redacted.Photos = append(redacted.Photos, item.Photos...)
				if item.HeroURL != nil {
					hero := *item.HeroURL
					redacted.HeroURL = &hero
				}
			}

			items = append(items, redacted)
		}
		result.Groups = append(result.Groups, domain.PublicGroup{
			ID:    group.ID,
			Name:  group.Name,
			Items: items,
		})
	}

	return result
}

func copyNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	n := *notes
	return &n
}
