package roster

import (
	"regexp"
	"strconv"
	"strings"

	"mentorsurvey/internal/model"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumerics into "_".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// MemberRow is a raw roster line before ids are assigned
type MemberRow struct {
	ID    string
	Name  string
	RowID string
}

// AssignIDs derives a member id for each row. Explicit ids are kept; otherwise
// the id is the slug of the name. A colliding id gets "_<row id>" appended,
// where the row id defaults to the 1-based position of the row.
// Rows whose name yields no slug keep an empty id and are left for the engine to skip.
func AssignIDs(rows []MemberRow) []model.Member {
	seen := make(map[string]bool, len(rows))
	members := make([]model.Member, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		id := Slugify(row.ID)
		if id == "" {
			id = Slugify(name)
		}
		if id != "" && seen[id] {
			rowID := Slugify(row.RowID)
			if rowID == "" {
				rowID = strconv.Itoa(i + 1)
			}
			base := id + "_" + rowID
			id = base
			for n := 2; seen[id]; n++ {
				id = base + "_" + strconv.Itoa(n)
			}
		}
		if id != "" {
			seen[id] = true
		}
		members = append(members, model.Member{ID: id, Name: name})
	}
	return members
}
