package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorsurvey/internal/model"
)

func TestStatic(t *testing.T) {
	p := NewStatic([]model.Team{
		{Name: "Zeta", MentorName: "Z"},
		{Name: "Alpha Team", MentorName: "A", Members: []model.Member{{ID: "a", Name: "A"}}},
	})

	t.Run("lists teams sorted", func(t *testing.T) {
		assert.Equal(t, []string{"Alpha Team", "Zeta"}, p.ListTeams())
	})

	t.Run("resolves team with derived key", func(t *testing.T) {
		team, err := p.GetTeam("Alpha Team")
		require.NoError(t, err)
		assert.Equal(t, "alpha_team", team.Key)
		assert.Equal(t, "A", team.MentorName)
		require.Len(t, team.Members, 1)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := p.GetTeam("Nope")
		require.ErrorIs(t, err, ErrUnknownTeam)
	})

	t.Run("returned members do not alias the snapshot", func(t *testing.T) {
		team, err := p.GetTeam("Alpha Team")
		require.NoError(t, err)
		team.Members[0].Name = "changed"

		again, err := p.GetTeam("Alpha Team")
		require.NoError(t, err)
		assert.Equal(t, "A", again.Members[0].Name)
	})
}

func TestBuiltin(t *testing.T) {
	p := Builtin()
	assert.Equal(t, []string{"Team A", "Team B"}, p.ListTeams())

	team, err := p.GetTeam("Team A")
	require.NoError(t, err)
	assert.Equal(t, "Alice Mentor", team.MentorName)
	assert.Len(t, team.Members, 3)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hicks, Paul":     "hicks_paul",
		"  Team A ":       "team_a",
		"O'Neil -- Ann!!": "o_neil_ann",
		"___":             "",
		"Ward Kayla 2":    "ward_kayla_2",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestAssignIDs(t *testing.T) {
	t.Run("derives slugs from names", func(t *testing.T) {
		members := AssignIDs([]MemberRow{{Name: "Hicks Paul"}, {Name: "Johnson Brenda"}})
		assert.Equal(t, []model.Member{
			{ID: "hicks_paul", Name: "Hicks Paul"},
			{ID: "johnson_brenda", Name: "Johnson Brenda"},
		}, members)
	})

	t.Run("disambiguates collisions with the row id", func(t *testing.T) {
		members := AssignIDs([]MemberRow{
			{Name: "Lee, Sam", RowID: "7"},
			{Name: "Lee Sam", RowID: "9"},
			{Name: "lee sam"},
		})
		require.Len(t, members, 3)
		assert.Equal(t, "lee_sam", members[0].ID)
		assert.Equal(t, "lee_sam_9", members[1].ID)
		assert.Equal(t, "lee_sam_3", members[2].ID)
	})

	t.Run("keeps explicit ids", func(t *testing.T) {
		members := AssignIDs([]MemberRow{{ID: "paul_hicks", Name: "Hicks, Paul"}})
		assert.Equal(t, "paul_hicks", members[0].ID)
	})

	t.Run("unsluggable names keep an empty id", func(t *testing.T) {
		members := AssignIDs([]MemberRow{{Name: "!!!"}})
		assert.Equal(t, "", members[0].ID)
		assert.ErrorIs(t, ValidateMember(members[0]), ErrMalformedEntry)
	})
}

func TestReadCSV(t *testing.T) {
	in := `team,mentor,member,row_id
Team A,Alice Mentor,"Hicks, Paul",r1
Team A,,"Hicks Paul",r2
Team B,Bob Mentor,"Lee, Sam",r3
,,orphan,r4
`
	teams, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, "Team A", teams[0].Name)
	assert.Equal(t, "Alice Mentor", teams[0].MentorName)
	assert.Equal(t, []model.Member{
		{ID: "hicks_paul", Name: "Hicks, Paul"},
		{ID: "hicks_paul_r2", Name: "Hicks Paul"},
	}, teams[0].Members)
	assert.Equal(t, "Team B", teams[1].Name)
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("team,member\nA,B\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mentor")
}

func TestReadYAML(t *testing.T) {
	in := `
teams:
  - name: Team A
    mentor: Alice Mentor
    members:
      - name: Hicks, Paul
      - id: custom
        name: Johnson, Brenda
      - name: Hicks Paul
`
	teams, err := ReadYAML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, []model.Member{
		{ID: "hicks_paul", Name: "Hicks, Paul"},
		{ID: "custom", Name: "Johnson, Brenda"},
		{ID: "hicks_paul_3", Name: "Hicks Paul"},
	}, teams[0].Members)
}
