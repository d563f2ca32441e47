package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The production schema defaults primary keys with gen_random_uuid(), but
// the SQLite databases the tests run on have no such default, so each model
// assigns its own UUID when one wasn't provided.

func (t *Team) BeforeCreate(*gorm.DB) error                 { fillID(&t.ID); return nil }
func (u *User) BeforeCreate(*gorm.DB) error                 { fillID(&u.ID); return nil }
func (t *Tournament) BeforeCreate(*gorm.DB) error           { fillID(&t.ID); return nil }
func (c *Course) BeforeCreate(*gorm.DB) error               { fillID(&c.ID); return nil }
func (r *Round) BeforeCreate(*gorm.DB) error                { fillID(&r.ID); return nil }
func (m *Match) BeforeCreate(*gorm.DB) error                { fillID(&m.ID); return nil }
func (p *MatchParticipant) BeforeCreate(*gorm.DB) error     { fillID(&p.ID); return nil }
func (s *Score) BeforeCreate(*gorm.DB) error                { fillID(&s.ID); return nil }
func (p *Player) BeforeCreate(*gorm.DB) error               { fillID(&p.ID); return nil }
func (s *TournamentPlayerStat) BeforeCreate(*gorm.DB) error { fillID(&s.ID); return nil }
func (s *PlayerCareerStat) BeforeCreate(*gorm.DB) error     { fillID(&s.ID); return nil }
func (h *TournamentHistory) BeforeCreate(*gorm.DB) error    { fillID(&h.ID); return nil }

func fillID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
