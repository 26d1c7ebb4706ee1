package render

import (
	"fmt"

	"github.com/jbukuts/folio/internal/content"
)

const schemaContext = "https://schema.org"

func (r *Renderer) blogPosting(post content.Post) map[string]any {
	return map[string]any{
		"@context":      schemaContext,
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Desc,
		"datePublished": post.Created.Format("2006-01-02"),
		"dateModified":  post.Updated.Format("2006-01-02T15:04:05Z07:00"),
		"timeRequired":  fmt.Sprintf("PT%dM", post.ReadingTime),
		"keywords":      post.Tags,
		"author": map[string]any{
			"@type": "Person",
			"name":  r.site.Profile.FullName(),
			"url":   r.URL("/"),
		},
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   r.URL("/posts/" + post.Slug),
		},
		"image": map[string]any{
			"@type":  "ImageObject",
			"url":    r.URL(r.site.Image),
			"width":  "300",
			"height": "300",
		},
	}
}

// person describes the site owner. jobs must be sorted newest first; the
// current location is taken from the most recent one.
func (r *Renderer) person(jobs []content.Job, education []content.Education) map[string]any {
	profile := r.site.Profile
	ld := map[string]any{
		"@context": schemaContext,
		"@type":    "Person",
		"name":     profile.FullName(),
	}
	if profile.EmailAddress != "" {
		ld["email"] = profile.EmailAddress
	}
	if profile.LinkedInURL != "" {
		ld["url"] = profile.LinkedInURL
	}

	if len(jobs) > 0 {
		latest := jobs[0]
		ld["address"] = map[string]any{
			"@type":           "PostalAddress",
			"addressLocality": latest.City,
			"addressRegion":   latest.State,
		}
		ld["workLocation"] = map[string]any{
			"@type": "Place",
			"name":  latest.City + ", " + latest.State,
		}
	}

	alumni := make([]map[string]any, 0, len(education))
	creds := make([]map[string]any, 0, len(education))
	for _, e := range education {
		alumni = append(alumni, map[string]any{"@type": "EducationalOrganization", "name": e.Uni})
		creds = append(creds, map[string]any{"@type": "EducationalOccupationalCredential", "name": e.Degree})
	}
	ld["alumniOf"] = alumni
	ld["hasCredential"] = creds

	roles := make([]map[string]any, 0, len(jobs))
	for _, j := range jobs {
		role := map[string]any{
			"@type":     "OrganizationRole",
			"roleName":  j.Title,
			"startDate": j.TimeRange.Start.Format("2006-01-02"),
			"memberOf":  map[string]any{"@type": "Organization", "name": j.Company},
		}
		if j.TimeRange.End != nil {
			role["endDate"] = j.TimeRange.End.Format("2006-01-02")
		}
		roles = append(roles, role)
	}
	ld["memberOf"] = roles
	return ld
}
