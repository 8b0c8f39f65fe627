package entity

import (
	"fmt"
	"strings"
	"time"
)

// PassengerProfile is the deduplicated identity record for one traveller,
// keyed by upper(name)+"_"+age and shared by passenger rows across tickets.
type PassengerProfile struct {
	ID           uint
	PassengerKey string // unique
	Name         string
	Age          int
	Gender       string
	TravelCount  int
	TotalSpent   float64
	FirstSeen    time.Time
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileKey builds the stable profile lookup key for a passenger identity.
func ProfileKey(name string, age int) string {
	return fmt.Sprintf("%s_%d", strings.ToUpper(strings.TrimSpace(name)), age)
}
