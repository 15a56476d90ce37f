package session

import (
	"context"
	"slices"
)

// ToggleCircle adds target to the viewer's circle or removes it. The change
// is applied locally first and undone if the server rejects it. Toggling
// yourself does nothing.
func (s *Session) ToggleCircle(ctx context.Context, targetID string) (bool, error) {
	s.mu.Lock()
	if s.viewer == nil {
		s.mu.Unlock()
		return false, ErrNoSession
	}
	if targetID == "" || targetID == s.viewer.ID {
		in := s.viewer.InCircle(targetID)
		s.mu.Unlock()
		return in, nil
	}
	before := slices.Clone(s.viewer.CircleIDs)
	s.viewer.CircleIDs = toggle(s.viewer.CircleIDs, targetID)
	in := s.viewer.InCircle(targetID)
	s.mu.Unlock()

	ids, err := s.remote.ToggleCircle(ctx, targetID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewer == nil {
		return in, err
	}
	if err != nil {
		s.viewer.CircleIDs = before
		return !in, err
	}
	s.viewer.CircleIDs = slices.Clone(ids)
	return s.viewer.InCircle(targetID), nil
}

func toggle(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(slices.Clone(ids), i, i+1)
	}
	return append(slices.Clone(ids), id)
}
