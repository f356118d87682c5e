package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mentorsurvey/internal/model"
)

// LoadFile reads teams from a .csv, .yaml or .yml roster file.
func LoadFile(path string) ([]model.Team, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported roster format %q", filepath.Ext(path))
	}
}

// ReadCSV parses one member per line. Required columns: team, mentor, member.
// Optional columns: member_id, row_id. Teams keep the order they first appear in.
func ReadCSV(r io.Reader) ([]model.Team, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"team", "mentor", "member"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("roster header missing %q column", required)
		}
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var order []string
	mentors := map[string]string{}
	rows := map[string][]MemberRow{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read roster line %d: %w", line, err)
		}
		team := field(rec, "team")
		if team == "" {
			continue
		}
		if _, ok := rows[team]; !ok {
			order = append(order, team)
			rows[team] = nil
		}
		if m := field(rec, "mentor"); m != "" && mentors[team] == "" {
			mentors[team] = m
		}
		rowID := field(rec, "row_id")
		if rowID == "" {
			rowID = fmt.Sprint(line)
		}
		rows[team] = append(rows[team], MemberRow{
			ID:    field(rec, "member_id"),
			Name:  field(rec, "member"),
			RowID: rowID,
		})
	}

	teams := make([]model.Team, 0, len(order))
	for _, name := range order {
		teams = append(teams, model.Team{
			Name:       name,
			MentorName: mentors[name],
			Members:    AssignIDs(rows[name]),
		})
	}
	return teams, nil
}

type yamlRoster struct {
	Teams []struct {
		Name    string `yaml:"name"`
		Mentor  string `yaml:"mentor"`
		Members []struct {
			ID   string `yaml:"id"`
			Name string `yaml:"name"`
		} `yaml:"members"`
	} `yaml:"teams"`
}

// ReadYAML parses a document of the form
//
//	teams:
//	  - name: Team A
//	    mentor: Alice Mentor
//	    members:
//	      - name: Hicks, Paul
func ReadYAML(r io.Reader) ([]model.Team, error) {
	var doc yamlRoster
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode roster yaml: %w", err)
	}
	teams := make([]model.Team, 0, len(doc.Teams))
	for _, t := range doc.Teams {
		rows := make([]MemberRow, 0, len(t.Members))
		for i, m := range t.Members {
			rows = append(rows, MemberRow{ID: m.ID, Name: m.Name, RowID: fmt.Sprint(i + 1)})
		}
		teams = append(teams, model.Team{
			Name:       strings.TrimSpace(t.Name),
			MentorName: strings.TrimSpace(t.Mentor),
			Members:    AssignIDs(rows),
		})
	}
	return teams, nil
}
