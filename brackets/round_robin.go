package brackets

// Encounter is one round-robin game between two seats of a poule (1-based).
type Encounter struct {
	Seat1 int `json:"seat1"`
	Seat2 int `json:"seat2"`
}

// PouleSchedule lists the round-robin encounters of a poule of the given size,
// every seat meeting every other once. Encounters come round by round and no
// seat plays twice within a round.
func PouleSchedule(size int) []Encounter {
	if size < 2 {
		return []Encounter{}
	}

	// Circle method: seat 1 is fixed, the others rotate. An odd poule gets a
	// phantom seat whose opponent rests that round.
	n := size
	if n%2 == 1 {
		n++
	}
	ring := make([]int, n)
	for i := range ring {
		ring[i] = i + 1
	}

	encounters := make([]Encounter, 0, size*(size-1)/2)
	for round := 0; round < n-1; round++ {
		for i := 0; i < n/2; i++ {
			a, b := ring[i], ring[n-1-i]
			if a > size || b > size {
				continue
			}
			if a > b {
				a, b = b, a
			}
			encounters = append(encounters, Encounter{Seat1: a, Seat2: b})
		}
		// Rotate every seat but the first.
		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}
	return encounters
}

// LayoutSchedules returns the encounter list of every poule in sizes.
func LayoutSchedules(sizes []int) [][]Encounter {
	out := make([][]Encounter, len(sizes))
	for i, size := range sizes {
		out[i] = PouleSchedule(size)
	}
	return out
}
