package graph

import (
	"context"

	"grafanagraphs/internal/store"
)

// fakeStore is a minimal staged store. saveErr makes Save fail.
type fakeStore struct {
	committed store.Sections
	working   store.Sections
	saveErr   error
	saves     int
	discards  int
}

func newFakeStore(initial store.Sections) *fakeStore {
	if initial == nil {
		initial = store.Sections{}
	}
	return &fakeStore{committed: initial.Clone(), working: initial.Clone()}
}

func (s *fakeStore) HasSection(name string) bool {
	_, ok := s.working[name]
	return ok
}

func (s *fakeStore) GetSection(name string) (store.Section, bool) {
	v, ok := s.working[name]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

func (s *fakeStore) SetSection(name string, values store.Section) {
	s.working[name] = values.Clone()
}

func (s *fakeStore) RemoveSection(name string) {
	delete(s.working, name)
}

func (s *fakeStore) Save(ctx context.Context) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.committed = s.working.Clone()
	return nil
}

func (s *fakeStore) Discard() {
	s.discards++
	s.working = s.committed.Clone()
}

func (s *fakeStore) Sections() store.Sections {
	return s.working.Clone()
}

// bareStore hides the listing capability of the wrapped store.
type bareStore struct {
	ConfigStore
}
