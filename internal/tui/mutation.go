package tui

import "github.com/mmcdole/stacks/internal/state"

// Mutation identifies a write operation against the backend
type Mutation int

const (
	MutCreateBook Mutation = iota
	MutUpdateBook
	MutDeleteBook
	MutCreateMember
	MutUpdateMember
	MutDeleteMember
	MutCreateLoan
	MutReturnLoan
)

// FailurePrefix is the toast prefix for a failed request
func (m Mutation) FailurePrefix() string {
	switch m {
	case MutCreateBook:
		return "Error adding book"
	case MutUpdateBook:
		return "Error updating book"
	case MutDeleteBook:
		return "Error deleting book"
	case MutCreateMember:
		return "Error adding member"
	case MutUpdateMember:
		return "Error updating member"
	case MutDeleteMember:
		return "Error deleting member"
	case MutCreateLoan:
		return "Error creating loan"
	default:
		return "Error returning book"
	}
}

// Resource is the list that must be reloaded after the mutation
func (m Mutation) Resource() state.Resource {
	switch m {
	case MutCreateBook, MutUpdateBook, MutDeleteBook:
		return state.ResourceBooks
	case MutCreateMember, MutUpdateMember, MutDeleteMember:
		return state.ResourceMembers
	default:
		return state.ResourceLoans
	}
}
