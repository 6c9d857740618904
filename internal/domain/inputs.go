package domain

import "time"

// BookInput is the payload for creating or updating a book
type BookInput struct {
	ISBN   string `json:"isbn" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Copies int    `json:"copies" validate:"min=0"`
}

// MemberInput is the payload for creating or updating a member
type MemberInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,simpleemail"`
}

// LoanInput is the payload for creating a loan.
// DueAt is a calendar date; the wire form is YYYY-MM-DD.
type LoanInput struct {
	MemberID string    `json:"memberId" validate:"required"`
	BookID   string    `json:"bookId" validate:"required"`
	DueAt    time.Time `json:"dueAt" validate:"required,today_or_later"`
}

// ListOptions selects a page of a list endpoint. Zero values are omitted.
type ListOptions struct {
	Page  int
	Limit int
}
