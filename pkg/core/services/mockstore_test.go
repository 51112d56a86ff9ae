package services

import (
	"context"
	"sort"

	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/db"
)

// mockRosterStore is an in-memory db.Database. Like the postgres store it
// rejects a second assignment of the same servant on the same day.
type mockRosterStore struct {
	servants    map[string]model.Servant
	assignments []model.Assignment

	getWeekErr   error
	refetchErr   error // returned by GetAssignmentsByWeek once a write has happened
	getServantsE error
	writeErr     error
	raceConflict bool // InsertAssignment/UpdateAssignment fail as if another writer won

	writes      int
	weekFetches int
}

var _ db.Database = (*mockRosterStore)(nil)

func newMockRosterStore(servants []model.Servant, assignments ...model.Assignment) *mockRosterStore {
	m := &mockRosterStore{servants: make(map[string]model.Servant)}
	for _, s := range servants {
		m.servants[s.ID] = s
	}
	m.assignments = append(m.assignments, assignments...)
	return m
}

func (m *mockRosterStore) GetServants(ctx context.Context, activeOnly bool) ([]model.Servant, error) {
	if m.getServantsE != nil {
		return nil, m.getServantsE
	}
	var result []model.Servant
	for _, s := range m.servants {
		if activeOnly && !s.IsActive() {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockRosterStore) GetServant(ctx context.Context, id string) (*model.Servant, error) {
	s, ok := m.servants[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &s, nil
}

func (m *mockRosterStore) InsertServant(ctx context.Context, servant *model.Servant) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.servants[servant.ID] = *servant
	m.writes++
	return nil
}

func (m *mockRosterStore) UpdateServant(ctx context.Context, servant *model.Servant) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if _, ok := m.servants[servant.ID]; !ok {
		return db.ErrNotFound
	}
	m.servants[servant.ID] = *servant
	m.writes++
	return nil
}

func (m *mockRosterStore) DeleteServant(ctx context.Context, id string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if _, ok := m.servants[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.servants, id)
	m.writes++
	return nil
}

func (m *mockRosterStore) CountServantAssignments(ctx context.Context, servantID string) (int, error) {
	count := 0
	for _, a := range m.assignments {
		if a.ServantID == servantID {
			count++
		}
	}
	return count, nil
}

func (m *mockRosterStore) GetAssignmentsByWeek(ctx context.Context, weekStart string) ([]model.Assignment, error) {
	m.weekFetches++
	if m.getWeekErr != nil {
		return nil, m.getWeekErr
	}
	if m.refetchErr != nil && m.writes > 0 {
		return nil, m.refetchErr
	}
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.WeekStart == weekStart {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockRosterStore) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockRosterStore) InsertAssignment(ctx context.Context, assignment *model.Assignment) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.raceConflict || m.dayTaken(*assignment) {
		return db.ErrDuplicateDayAssignment
	}
	m.assignments = append(m.assignments, *assignment)
	m.writes++
	return nil
}

func (m *mockRosterStore) UpdateAssignment(ctx context.Context, assignment *model.Assignment) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.raceConflict || m.dayTaken(*assignment) {
		return db.ErrDuplicateDayAssignment
	}
	for i := range m.assignments {
		if m.assignments[i].ID == assignment.ID {
			locked := m.assignments[i].Locked
			m.assignments[i] = *assignment
			m.assignments[i].Locked = locked
			m.writes++
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockRosterStore) SetAssignmentLocked(ctx context.Context, id string, locked bool) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			m.assignments[i].Locked = locked
			m.writes++
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockRosterStore) DeleteAssignment(ctx context.Context, id string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			m.writes++
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockRosterStore) dayTaken(candidate model.Assignment) bool {
	for _, a := range m.assignments {
		if a.ID != candidate.ID && a.WeekStart == candidate.WeekStart &&
			a.Day == candidate.Day && a.ServantID == candidate.ServantID {
			return true
		}
	}
	return false
}

func (m *mockRosterStore) find(id string) (model.Assignment, bool) {
	for _, a := range m.assignments {
		if a.ID == id {
			return a, true
		}
	}
	return model.Assignment{}, false
}

const testWeek = "2024-06-01"

func testServants() []model.Servant {
	return []model.Servant{
		{ID: "s1", Name: "Ana", Status: model.StatusActive},
		{ID: "s2", Name: "Bruno", Status: model.StatusActive},
		{ID: "s3", Name: "Carla", Status: model.StatusInactive},
		{ID: "s4", Name: "Davi", Status: model.StatusActive},
	}
}
