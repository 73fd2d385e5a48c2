package brackets

// PouleLayout is the sizing of the round-robin groups for a participant count.
type PouleLayout struct {
	Sizes        []int `json:"sizes"`
	TablesNeeded int   `json:"tables_needed"`
}

const preferredPouleSize = 3

// DistributePoules splits n participants into poules of three, absorbing the
// remainder into a poule of 4 or 5, or into an extra poule of 2 when allowed.
// An empty layout means the competition cannot run.
func DistributePoules(n int, allowPouleOfTwo bool) PouleLayout {
	minimum := 3
	if allowPouleOfTwo {
		minimum = 2
	}
	if n < minimum {
		return PouleLayout{Sizes: []int{}}
	}
	if n == 2 {
		return newLayout([]int{2})
	}

	k := n / preferredPouleSize
	sizes := make([]int, k, k+1)
	for i := range sizes {
		sizes[i] = preferredPouleSize
	}

	switch n % preferredPouleSize {
	case 1:
		sizes[k-1]++
	case 2:
		if allowPouleOfTwo {
			sizes = append(sizes, 2)
		} else {
			sizes[k-1] += 2
		}
	}
	return newLayout(sizes)
}

// TablesForPoule returns how many tables a poule occupies: one up to three
// players, otherwise one per two players so that matches run in parallel.
func TablesForPoule(size int) int {
	if size <= 0 {
		return 0
	}
	if size <= preferredPouleSize {
		return 1
	}
	return (size + 1) / 2
}

// TablesNeeded sums TablesForPoule over sizes.
func TablesNeeded(sizes []int) int {
	total := 0
	for _, size := range sizes {
		total += TablesForPoule(size)
	}
	return total
}

func newLayout(sizes []int) PouleLayout {
	return PouleLayout{Sizes: sizes, TablesNeeded: TablesNeeded(sizes)}
}
