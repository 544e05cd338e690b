// Package reviewers assigns a reviewer for a listing request from a
// roster file. The roster maps GitHub usernames to the team they belong
// to; assignment picks a team at random and then a member of that team,
// so small teams are not drowned out by large ones.
package reviewers

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Roster holds the reviewer pool grouped by team.
type Roster struct {
	// byTeam maps a team name to its members, sorted.
	byTeam map[string][]string
}

// Load reads a roster file of the form:
//
//	username: team-name
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reviewers file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Roster from raw YAML.
func Parse(data []byte) (*Roster, error) {
	var flat map[string]string
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parsing reviewers file: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("reviewers file lists no reviewers")
	}

	byTeam := map[string][]string{}
	for user, team := range flat {
		byTeam[team] = append(byTeam[team], user)
	}
	for team := range byTeam {
		sort.Strings(byTeam[team])
	}
	return &Roster{byTeam: byTeam}, nil
}

// Teams returns the team names, sorted.
func (r *Roster) Teams() []string {
	teams := make([]string, 0, len(r.byTeam))
	for team := range r.byTeam {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// Members returns the members of a team, sorted.
func (r *Roster) Members(team string) []string {
	return append([]string(nil), r.byTeam[team]...)
}

// Pick chooses a reviewer: first a team uniformly at random, then a
// member of that team. rng may be shared; callers wanting reproducible
// picks pass a seeded source.
func (r *Roster) Pick(rng *rand.Rand) string {
	teams := r.Teams()
	team := teams[rng.Intn(len(teams))]
	members := r.byTeam[team]
	return members[rng.Intn(len(members))]
}
