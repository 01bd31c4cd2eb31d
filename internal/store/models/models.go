package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Course is the courses table.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Name          string    `bun:"name,notnull"`
	Location      string    `bun:"location"`
	Description   string    `bun:"description"`
	Active        bool      `bun:"active,notnull,default:true"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`

	TeeBoxes []*TeeBox `bun:"rel:has-many,join:id=course_id"`
}

// TeeBox is the tee_boxes table.
type TeeBox struct {
	bun.BaseModel `bun:"table:tee_boxes,alias:t"`
	ID            int64  `bun:"id,pk,autoincrement"`
	CourseID      int64  `bun:"course_id,notnull"`
	Name          string `bun:"name,notnull"`
	Color         string `bun:"color,notnull,default:'gray'"`

	Holes []*Hole `bun:"rel:has-many,join:id=tee_box_id"`
}

// Hole is the holes table.
type Hole struct {
	bun.BaseModel `bun:"table:holes,alias:h"`
	ID            int64 `bun:"id,pk,autoincrement"`
	TeeBoxID      int64 `bun:"tee_box_id,notnull"`
	Number        int   `bun:"number,notnull"`
	Distance      int   `bun:"distance,notnull"`
	Par           int   `bun:"par,notnull"`
	HcpIndex      int   `bun:"hcp_index,notnull"`
}

// User is the users table.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Email         string    `bun:"email,notnull,unique"`
	PasswordHash  string    `bun:"password_hash,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Round is the rounds table. Per-hole arrays are stored as JSON.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`
	ID            int64     `bun:"id,pk,autoincrement"`
	UserID        int64     `bun:"user_id,notnull"`
	CourseID      int64     `bun:"course_id,notnull"`
	TeeBoxID      int64     `bun:"tee_box_id,notnull"`
	Date          string    `bun:"date,notnull"`
	Scores        []int     `bun:"scores,notnull"`
	Putts         []int     `bun:"putts"`
	GIR           []bool    `bun:"gir"`
	Fairways      []bool    `bun:"fairways"`
	Bunkers       []int     `bun:"bunkers"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
