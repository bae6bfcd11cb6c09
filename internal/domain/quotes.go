package domain

// Quotes are shown after logging unless silent mode is on.
var Quotes = []string{
	"Small steps every day add up to big results.",
	"Progress, not perfection.",
	"Your code today is better than your code yesterday.",
	"Rest is part of the work.",
	"Every bug fixed is a lesson learned.",
	"Consistency beats intensity.",
	"Be kind to yourself, you're doing your best.",
	"Great things are built one commit at a time.",
}
