package settings

// IsFirstRun reports whether first-run setup has not been completed yet.
func (s *Settings) IsFirstRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstRun
}

// CompleteFirstRun records that first-run setup is done.
func (s *Settings) CompleteFirstRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.firstRun = false
	s.stage(KeyFirstRun, false)
}

// MigratedFrom returns the schema the store was last migrated from.
func (s *Settings) MigratedFrom() (SchemaVersion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.migratedFrom == nil {
		return 0, false
	}
	return *s.migratedFrom, true
}
