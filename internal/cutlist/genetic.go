package cutlist

import (
	"math/rand/v2"
	"sort"
)

// GeneticConfig holds parameters for the genetic algorithm optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// chromosome is a cutting order: a permutation of piece indices.
type chromosome struct {
	order   []int
	fitness float64
}

type geneticOptimizer struct {
	settings Settings
	config   GeneticConfig
	pieces   []Piece
	rng      *rand.Rand
}

func newGeneticOptimizer(settings Settings, config GeneticConfig, pieces []Piece, seed uint64) *geneticOptimizer {
	return &geneticOptimizer{
		settings: settings,
		config:   config,
		pieces:   pieces,
		rng:      rand.New(rand.NewPCG(seed, seed)),
	}
}

// optimize evolves cutting orders and returns the bars of the best one.
// The first-fit decreasing order seeds the population, so the result is
// never worse than the greedy plan.
func (g *geneticOptimizer) optimize() []Bar {
	if len(g.pieces) == 0 {
		return nil
	}

	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sortByFitness(population)

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := min(g.config.EliteCount, len(population))
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, population[i].clone())
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)
			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)
			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}
		population = newPop
	}

	sortByFitness(population)
	return g.decode(population[0])
}

func sortByFitness(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
}

func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.pieces)
	population := make([]chromosome, max(g.config.PopulationSize, 1))
	for i := range population {
		population[i] = chromosome{order: g.rng.Perm(n)}
	}
	population[0] = g.greedyChromosome()
	return population
}

// greedyChromosome orders pieces longest first.
func (g *geneticOptimizer) greedyChromosome() chromosome {
	order := make([]int, len(g.pieces))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.pieces[order[i]].Length > g.pieces[order[j]].Length
	})
	return chromosome{order: order}
}

// evaluate rewards fewer bars first and, among equal counts, a fuller
// first bar so offcuts collect in few long remnants.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	bars := g.decode(c)
	if len(bars) == 0 {
		return 0
	}
	var squares float64
	for _, b := range bars {
		fill := b.Used(g.settings.Kerf) / b.Length
		squares += fill * fill
	}
	return -float64(len(bars)) + squares/float64(len(bars))
}

func (g *geneticOptimizer) decode(c chromosome) []Bar {
	ordered := make([]Piece, len(c.order))
	for i, idx := range c.order {
		ordered[i] = g.pieces[idx]
	}
	return packInOrder(g.settings, ordered)
}

func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.IntN(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.IntN(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return best.clone()
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return parent1.clone()
	}

	point1 := g.rng.IntN(n)
	point2 := g.rng.IntN(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}
	inSegment := make([]bool, n)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	childIdx := (point2 + 1) % n
	for _, idx := range parent2.order {
		if !inSegment[idx] {
			child.order[childIdx] = idx
			childIdx = (childIdx + 1) % n
		}
	}
	return child
}

func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	// Swap mutation
	if g.rng.Float64() < g.config.MutationRate {
		i, j := g.rng.IntN(n), g.rng.IntN(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	// Inversion mutation: reverse a small segment (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i, j := g.rng.IntN(n), g.rng.IntN(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

func (c chromosome) clone() chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, fitness: c.fitness}
}

// optimizeGenetic runs the genetic optimizer over one section's pieces.
func optimizeGenetic(settings Settings, pieces []Piece) []Bar {
	config := DefaultGeneticConfig()

	// Scale generations for larger problems
	if len(pieces) > 20 {
		config.Generations = 150
	}
	if len(pieces) > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}

	return newGeneticOptimizer(settings, config, pieces, 42).optimize()
}
