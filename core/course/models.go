package course

import (
	"time"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

type Course struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	NumWeeks  *int      `json:"num_weeks"` // nil or 0: self-paced
	CreatedAt time.Time `json:"created_at"` // UTC
}

// SelfPaced reports whether the course has no fixed duration.
func (c Course) SelfPaced() bool {
	return c.NumWeeks == nil || *c.NumWeeks == 0
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title    string `json:"title" validate:"required"`
	NumWeeks *int   `json:"num_weeks" validate:"omitempty,min=0"`
}

func (nc *NewCourse) Clean() {
	nc.Title = core.CleanString(nc.Title)
}
