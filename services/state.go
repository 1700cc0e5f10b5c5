package services

import (
	"strings"

	"eatery-scraper/models"
	"eatery-scraper/utils"
)

// StateAppender qualifies draft addresses with the state name so the
// geocoder does not match a same-named street elsewhere.
type StateAppender struct {
	logger *utils.Logger
}

func NewStateAppender(logger *utils.Logger) *StateAppender {
	return &StateAppender{logger: logger}
}

// Apply returns a copy of records with ", <state>" appended to every draft
// address that does not already end with it.
func (s *StateAppender) Apply(records []*models.Eatery, state string) []*models.Eatery {
	out := models.CloneAll(records)
	suffix := ", " + state
	changed := 0

	for _, rec := range out {
		if rec.Address == nil {
			continue
		}
		for i, addr := range *rec.Address {
			if strings.HasSuffix(addr, suffix) {
				continue
			}
			(*rec.Address)[i] = addr + suffix
			changed++
		}
	}

	s.logger.Info("[state] Qualified %d addresses with %q", changed, state)
	return out
}
