package bundle

import (
	"encoding/json"
	"slices"
)

// Selection is an insertion-ordered set of service ids.
type Selection struct {
	ids []int64
}

func NewSelection(ids ...int64) Selection {
	var s Selection
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add appends id; adding an id already present is a no-op.
func (s *Selection) Add(id int64) bool {
	if s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

func (s *Selection) Remove(id int64) bool {
	i := slices.Index(s.ids, id)
	if i < 0 {
		return false
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return true
}

// Toggle adds or removes id and reports whether it is now selected.
func (s *Selection) Toggle(id int64) bool {
	if s.Remove(id) {
		return false
	}
	s.Add(id)
	return true
}

func (s Selection) Contains(id int64) bool {
	return slices.Contains(s.ids, id)
}

func (s Selection) Len() int {
	return len(s.ids)
}

func (s Selection) IDs() []int64 {
	return slices.Clone(s.ids)
}

func (s Selection) Clone() Selection {
	return Selection{ids: slices.Clone(s.ids)}
}

func (s Selection) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

// UnmarshalJSON accepts a list of ids and drops duplicates.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSelection(ids...)
	return nil
}
