package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAvatar is assigned when a user is created without one.
const DefaultAvatar = "👤"

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{10,}$`)
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserRef is the reduced owner projection attached to todo responses.
type UserRef struct {
	ID     primitive.ObjectID `json:"_id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Avatar string             `json:"avatar"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

// Normalize trims string fields, lowercases the email, and applies the
// avatar default. Must run before Validate.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Phone = strings.TrimSpace(u.Phone)
	u.Bio = strings.TrimSpace(u.Bio)
	if u.Avatar == "" {
		u.Avatar = DefaultAvatar
	}
}

func (u User) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len([]rune(u.Name)) > 50 {
		return fmt.Errorf("name cannot be more than 50 characters")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(u.Email) {
		return fmt.Errorf("invalid email address %q", u.Email)
	}
	if u.Phone != "" && !phonePattern.MatchString(u.Phone) {
		return fmt.Errorf("invalid phone number %q", u.Phone)
	}
	if len([]rune(u.Bio)) > 200 {
		return fmt.Errorf("bio cannot be more than 200 characters")
	}
	return nil
}
